package types

import "time"

// FeatureMatrix holds one row of sentiment scores per respondent, aligned to
// Columns. The column set is fixed once the QuestionSet is known.
type FeatureMatrix struct {
	Columns []string    `json:"columns"`
	Rows    [][]float64 `json:"rows"`

	// MalformedCells counts cells recovered with a neutral score.
	MalformedCells int `json:"malformed_cells"`
}

func (m *FeatureMatrix) NumRows() int {
	if m == nil {
		return 0
	}
	return len(m.Rows)
}

func (m *FeatureMatrix) NumFeatures() int {
	if m == nil {
		return 0
	}
	return len(m.Columns)
}

// Vector returns row i keyed by question.
func (m *FeatureMatrix) Vector(i int) SentimentVector {
	v := make(SentimentVector, len(m.Columns))
	for j, c := range m.Columns {
		v[c] = m.Rows[i][j]
	}
	return v
}

// TotalSentimentScore is the sum of row i, including all-zero columns.
// It is always derived from the row, never stored.
func (m *FeatureMatrix) TotalSentimentScore(i int) float64 {
	var sum float64
	for _, s := range m.Rows[i] {
		sum += s
	}
	return sum
}

// Totals returns TotalSentimentScore for every respondent.
func (m *FeatureMatrix) Totals() []float64 {
	out := make([]float64, m.NumRows())
	for i := range out {
		out[i] = m.TotalSentimentScore(i)
	}
	return out
}

// ClusterAssignment is the Segmentation Engine output, read-only downstream.
type ClusterAssignment struct {
	K         int           `json:"k"`
	IDs       []int         `json:"ids"`
	Labels    []HealthLabel `json:"labels"`
	Inertia   float64       `json:"inertia"`
	Centroids [][]float64   `json:"centroids"`

	// LabelOf maps cluster id to label. Positional unless ranking was requested.
	LabelOf []HealthLabel `json:"label_of"`
}

// Counts returns the number of respondents per cluster id. Buckets may be empty.
func (a *ClusterAssignment) Counts() []int {
	counts := make([]int, a.K)
	for _, id := range a.IDs {
		counts[id]++
	}
	return counts
}

// Label returns the label for a cluster id.
func (a *ClusterAssignment) Label(id int) HealthLabel {
	if id >= 0 && id < len(a.LabelOf) {
		return a.LabelOf[id]
	}
	return LabelForCluster(id)
}

// ClassMetrics is one row of a classification report.
type ClassMetrics struct {
	Precision float64 `json:"precision" firestore:"precision"`
	Recall    float64 `json:"recall" firestore:"recall"`
	F1        float64 `json:"f1_score" firestore:"f1Score"`
	Support   int     `json:"support" firestore:"support"`
}

// EvaluationReport is computed against the test split only.
type EvaluationReport struct {
	Accuracy    float64                 `json:"accuracy" firestore:"accuracy"`
	Classes     map[string]ClassMetrics `json:"classes" firestore:"classes"`
	ClassOrder  []string                `json:"class_order" firestore:"classOrder"`
	MacroAvg    ClassMetrics            `json:"macro_avg" firestore:"macroAvg"`
	WeightedAvg ClassMetrics            `json:"weighted_avg" firestore:"weightedAvg"`
	TrainSize   int                     `json:"train_size" firestore:"trainSize"`
	TestSize    int                     `json:"test_size" firestore:"testSize"`
}

// FeatureImportance is one entry of a ranked importance list.
type FeatureImportance struct {
	Feature    string  `json:"feature" firestore:"feature"`
	Importance float64 `json:"importance" firestore:"importance"`
}

// ScoreStats mirrors a describe() summary of TotalSentimentScore.
type ScoreStats struct {
	Count int     `json:"count" firestore:"count"`
	Mean  float64 `json:"mean" firestore:"mean"`
	Std   float64 `json:"std" firestore:"std"`
	Min   float64 `json:"min" firestore:"min"`
	Q25   float64 `json:"25%" firestore:"q25"`
	Q50   float64 `json:"50%" firestore:"q50"`
	Q75   float64 `json:"75%" firestore:"q75"`
	Max   float64 `json:"max" firestore:"max"`
}

// ClusterStats summarises TotalSentimentScore within one cluster.
type ClusterStats struct {
	ClusterID int         `json:"cluster_id" firestore:"clusterId"`
	Label     HealthLabel `json:"label" firestore:"label"`
	Count     int         `json:"count" firestore:"count"`
	Mean      float64     `json:"mean" firestore:"mean"`
	Std       float64     `json:"std" firestore:"std"`
}

// Crosstab counts respondents per (category, label).
type Crosstab map[string]map[HealthLabel]int

// Overview holds the headline numbers of a run.
type Overview struct {
	Personnel          int `json:"total_personnel" firestore:"totalPersonnel"`
	AssessmentQuestion int `json:"assessment_questions" firestore:"assessmentQuestions"`
	HealthGroups       int `json:"mental_health_groups" firestore:"mentalHealthGroups"`
}

// Analysis is the result of one pipeline invocation. Stages that could not
// run leave their fields nil and record why; nothing is mutated after return.
type Analysis struct {
	ID        string    `json:"id"`
	CreatedAt time.Time `json:"created_at"`
	Source    string    `json:"source"`

	// Shape and Sample describe the raw table, so a run that could not be
	// clustered or modeled still has the data itself to show.
	Shape   Shape    `json:"shape"`
	Columns []string `json:"columns"`
	Sample  []Row    `json:"sample"`

	Overview   Overview       `json:"overview"`
	Questions  QuestionSet    `json:"questions"`
	Matrix     *FeatureMatrix `json:"feature_matrix"`
	Totals     []float64      `json:"total_sentiment_scores"`
	ScoreStats ScoreStats     `json:"score_stats"`

	Assignment     *ClusterAssignment     `json:"clusters,omitempty"`
	ClusterSummary []ClusterStats         `json:"cluster_summary,omitempty"`
	Demographics   map[string]Crosstab    `json:"demographics,omitempty"`
	Summaries      map[HealthLabel]string `json:"summaries,omitempty"`

	Report      *EvaluationReport   `json:"evaluation,omitempty"`
	Importances []FeatureImportance `json:"feature_importance,omitempty"`

	SegmentationError string `json:"segmentation_error,omitempty"`
	ModelingError     string `json:"modeling_error,omitempty"`
}

// Clustered reports whether the Segmentation Engine produced an assignment.
func (a *Analysis) Clustered() bool { return a != nil && a.Assignment != nil }

// Modeled reports whether an evaluation report is available.
func (a *Analysis) Modeled() bool { return a != nil && a.Report != nil }

// TopFeatures returns up to n importances, already ranked.
func (a *Analysis) TopFeatures(n int) []FeatureImportance {
	if n > len(a.Importances) {
		n = len(a.Importances)
	}
	return a.Importances[:n]
}
