package words

import "fmt"

// HomographSources names the files from which cross-lingual homographs are
// derived for a language pair.
type HomographSources struct {
	L1Dictionary  string `yaml:"l1_dictionary"`
	L2Dictionary  string `yaml:"l2_dictionary"`
	L1Frequencies string `yaml:"l1_frequencies"`
	L2Frequencies string `yaml:"l2_frequencies"`
	Threshold     int    `yaml:"threshold"`
}

// LoadHomographs returns words that are in both dictionaries and occur at
// least Threshold times in both corpora. A zero Threshold selects
// DefaultFrequencyThreshold.
func LoadHomographs(src HomographSources) ([]string, error) {
	threshold := src.Threshold
	if threshold == 0 {
		threshold = DefaultFrequencyThreshold
	}

	d1, err := LoadDictionary(src.L1Dictionary)
	if err != nil {
		return nil, err
	}

	d2, err := LoadDictionary(src.L2Dictionary)
	if err != nil {
		return nil, err
	}

	f1, err := LoadFrequencies(src.L1Frequencies)
	if err != nil {
		return nil, err
	}

	f2, err := LoadFrequencies(src.L2Frequencies)
	if err != nil {
		return nil, err
	}

	out := Homographs(d1, d2, FilterByFrequency(f1, threshold), FilterByFrequency(f2, threshold))
	if len(out) == 0 {
		return nil, fmt.Errorf("no homographs at threshold %d", threshold)
	}

	return out, nil
}
