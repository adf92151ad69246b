package models

// Stats are the totals shown on the statistics screen.
type Stats struct {
	Days  int `json:"days" yaml:"days"`
	Sets  int `json:"sets" yaml:"sets"`
	Words int `json:"words" yaml:"words"`
}

// StatsOf counts the nodes of v.
func StatsOf(v *Vault) Stats {
	var st Stats
	if v == nil {
		return st
	}
	st.Days = len(v.Days)
	for _, d := range v.Days {
		st.Sets += len(d.Sets)
		for _, s := range d.Sets {
			st.Words += len(s.Words)
		}
	}
	return st
}
