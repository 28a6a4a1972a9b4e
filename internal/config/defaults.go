package config

const (
	defaultDataDir             = "~/.local/share/phonocover"
	defaultLogDir              = "~/.local/share/phonocover/logs"
	defaultDictionary          = "~/.local/share/phonocover/cmudict.dict"
	defaultPicksFileName       = "picks.json"
	defaultRunsDBName          = "runs.db"
	defaultMaxSentences        = 50
	defaultMinCoverage         = 2
	defaultTieBreak            = TieBreakFirstSeen
	defaultTSVColumn           = 0
	defaultMinWords            = 0
	defaultSimilarityThreshold = 0.8
	defaultPickTarget          = 50
	defaultLogFormat           = "console"
	defaultLogLevel            = "info"
)

// TieBreakFirstSeen selects the lowest sentence id among equally scored
// candidates. It is currently the only supported policy.
const TieBreakFirstSeen = "first-seen"

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			DataDir:    defaultDataDir,
			LogDir:     defaultLogDir,
			Dictionary: defaultDictionary,
		},
		Selection: Selection{
			MaxSentences: defaultMaxSentences,
			MinCoverage:  defaultMinCoverage,
			TieBreak:     defaultTieBreak,
		},
		Corpus: Corpus{
			TSVColumn: defaultTSVColumn,
			MinWords:  defaultMinWords,
		},
		Analysis: Analysis{
			SimilarityThreshold: defaultSimilarityThreshold,
			PickTarget:          defaultPickTarget,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
