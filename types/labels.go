package types

import "strconv"

// HealthLabel is the shared three-tier label vocabulary.
type HealthLabel string

const (
	HighHealth     HealthLabel = "High Health"
	ModerateHealth HealthLabel = "Moderate Health"
	NeedsSupport   HealthLabel = "Needs Support"
)

// ClusterLabels is indexed positionally by cluster id.
var ClusterLabels = []HealthLabel{HighHealth, ModerateHealth, NeedsSupport}

// LabelForCluster looks the label up by position. Ids outside the scale
// fall back to the numeric id, the way an unmapped report key is shown.
func LabelForCluster(id int) HealthLabel {
	if id >= 0 && id < len(ClusterLabels) {
		return ClusterLabels[id]
	}
	return HealthLabel(strconv.Itoa(id))
}
