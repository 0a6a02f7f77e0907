package report

import "stockbot/internal/stockdata"

const (
	emojiStonk  = "📈"
	emojiFire   = "🔥"
	emojiRocket = "🚀"
	emojiApe    = "🦍"
	emojiMoon   = "🌕"
	emojiCash   = "💵"
)

var (
	gmeTags    = []string{"$GME #GME #GameStop #GMESTOP"}
	amcTags    = []string{"$AMC #AMC #SECScandal", "#Ape #ThresholdList #AMCSTOCK"}
	sharedTags = []string{"#Moon #NeverLeaving #MOASS #ApesTogetherStrong", "#Squeeze #FTD #Bullish #NYSE"}
)

// Tags returns the hashtag lines appended to every post about `ticker`.
func Tags(ticker stockdata.Ticker) []string {
	switch ticker {
	case stockdata.AMC:
		return append([]string{}, amcTags...)
	case stockdata.GME:
		out := append([]string{}, gmeTags...)
		return append(out, sharedTags...)
	}
	return nil
}
