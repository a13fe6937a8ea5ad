package dict

type (
	LookupResp struct {
		Def []Definition `json:"def"`
	}
	Definition struct {
		Text string        `json:"text"`
		Pos  string        `json:"pos"`
		Ts   string        `json:"ts,omitempty"`
		Tr   []Translation `json:"tr"`
	}
	Translation struct {
		Text string        `json:"text"`
		Pos  string        `json:"pos"`
		Gen  string        `json:"gen,omitempty"`
		Syn  []Translation `json:"syn,omitempty"`
		Mean []struct {
			Text string `json:"text"`
		} `json:"mean,omitempty"`
	}
	errResp struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	}
)

// FirstTranslation picks the translation shown to the user. When the
// first candidate only echoes the source word the second one is used.
func (r *LookupResp) FirstTranslation(word string) (string, bool) {
	if r == nil || len(r.Def) == 0 || len(r.Def[0].Tr) == 0 {
		return "", false
	}
	tr := r.Def[0].Tr
	first := tr[0].Text
	if equalFold(first, word) && len(tr) > 1 {
		return tr[1].Text, true
	}
	return first, first != ""
}
