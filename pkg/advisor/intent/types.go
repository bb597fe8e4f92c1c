// Package intent classifies one user message into a structured shopping
// intent: catalog query, general tech question, or rejection.
package intent

const (
	TaskQuery     = "query"
	TaskGeneralQA = "general_qa"
	TaskReject    = "reject"
)

const (
	ComparisonSingle = "single"
	ComparisonMulti  = "multi"
	ComparisonRange  = "range"
)

type Entities struct {
	Companies []string `json:"company"`
	Models    []string `json:"model"`
	Features  []string `json:"features"`
}

type Constraints struct {
	MinPrice   *int     `json:"min_price"`
	MaxPrice   *int     `json:"max_price"`
	MinRam     *float64 `json:"min_ram"`
	MinBattery *int     `json:"min_battery"`
	MinCamera  *float64 `json:"min_camera"`
	MinStorage *int     `json:"min_storage"`
}

type Intent struct {
	Task             string      `json:"task"`
	Entities         Entities    `json:"entities"`
	Constraints      Constraints `json:"constraints"`
	ComparisonType   string      `json:"comparison_type"`
	PriorityFeatures []string    `json:"priority_features"`

	// IsFollowup is set by the pre-check heuristic, never by the model.
	IsFollowup bool `json:"-"`
	// RejectionReason carries the safety-guard violation kind, if any.
	RejectionReason string `json:"-"`
}

// Clone returns a deep copy so correction never mutates the parsed intent.
func (i *Intent) Clone() *Intent {
	c := *i
	c.Entities.Companies = append([]string(nil), i.Entities.Companies...)
	c.Entities.Models = append([]string(nil), i.Entities.Models...)
	c.Entities.Features = append([]string(nil), i.Entities.Features...)
	c.PriorityFeatures = append([]string(nil), i.PriorityFeatures...)
	return &c
}

// DefaultIntent is the safe degradation target when parsing fails: a plain
// query with no entities, so retrieval still runs.
func DefaultIntent() *Intent {
	return &Intent{
		Task:           TaskQuery,
		ComparisonType: ComparisonSingle,
	}
}
