// Package verse rotates the encouragement verses shown under the
// savings calendar.
package verse

import "math/rand"

// Verse is one displayable quote with its reference.
type Verse struct {
	Text string
	Ref  string
}

var verses = []Verse{
	{"我靠著那加給我力量的，凡事都能做。", "腓立比書 4:13"},
	{"應當一無掛慮，只要凡事藉著禱告、祈求，和感謝，將你們所要的告訴神。", "腓立比書 4:6"},
	{"信就是所望之事的實底，是未見之事的確據。", "希伯來書 11:1"},
	{"愛是恆久忍耐，又有恩慈；愛是不嫉妒；愛是不自誇，不張狂。", "哥林多前書 13:4"},
	{"你們祈求，就給你們；尋找，就尋見；叩門，就給你們開門。", "馬太福音 7:7"},
	{"神若幫助我們，誰能敵擋我們呢？", "羅馬書 8:31"},
	{"我們曉得萬事都互相效力，叫愛神的人得益處。", "羅馬書 8:28"},
	{"不要為明天憂慮，因為明天自有明天的憂慮；一天的難處一天當就夠了。", "馬太福音 6:34"},
	{"喜樂的心乃是良藥；憂傷的靈使骨枯乾。", "箴言 17:22"},
	{"因為神賜給我們，不是膽怯的心，乃是剛強、仁愛、謹守的心。", "提摩太後書 1:7"},
	{"凡勞苦擔重擔的人可以到我這裡來，我就使你們得安息。", "馬太福音 11:28"},
	{"願恩惠、平安從神我們的父並主耶穌基督歸與你們。", "哥林多前書 1:3"},
}

// All returns the full rotation in display order.
func All() []Verse {
	return append([]Verse(nil), verses...)
}

// Pick returns a random verse from the rotation.
func Pick(r *rand.Rand) Verse {
	if r == nil {
		return verses[rand.Intn(len(verses))]
	}
	return verses[r.Intn(len(verses))]
}
