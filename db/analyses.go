package db

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go-mindfit/types"

	"cloud.google.com/go/firestore"
	"github.com/sirupsen/logrus"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const analysesCollection = "analyses"

var ErrAnalysisNotFound = errors.New("analysis not found")

// AnalysisStore keeps snapshots of finished analyses.
type AnalysisStore interface {
	SaveAnalysis(ctx context.Context, a *types.Analysis) error
	GetAnalysis(ctx context.Context, id string) (*AnalysisDoc, error)
	ListAnalyses(ctx context.Context, limit int) ([]AnalysisDoc, error)
}

// AnalysisDoc is the stored form of an Analysis. Firestore rejects nested
// arrays, so the feature matrix and centroids are left out; the per-row
// totals and cluster ids are enough to rebuild every chart.
type AnalysisDoc struct {
	ID        string    `firestore:"id" json:"id"`
	CreatedAt time.Time `firestore:"createdAt" json:"created_at"`
	Source    string    `firestore:"source" json:"source"`

	Shape            types.Shape      `firestore:"shape" json:"shape"`
	Columns          []string         `firestore:"columns" json:"columns"`
	Sample           []types.Row      `firestore:"sample" json:"sample"`
	Overview         types.Overview   `firestore:"overview" json:"overview"`
	TextualQuestions []string         `firestore:"textualQuestions" json:"textual_questions"`
	OrdinalQuestions []string         `firestore:"ordinalQuestions" json:"ordinal_questions"`
	Totals           []float64        `firestore:"totalSentimentScores" json:"total_sentiment_scores"`
	ScoreStats       types.ScoreStats `firestore:"scoreStats" json:"score_stats"`
	MalformedCells   int              `firestore:"malformedCells" json:"malformed_cells"`

	ClusterIDs     []int                                `firestore:"clusterIds,omitempty" json:"cluster_ids,omitempty"`
	Inertia        float64                              `firestore:"inertia" json:"inertia"`
	ClusterSummary []types.ClusterStats                 `firestore:"clusterSummary,omitempty" json:"cluster_summary,omitempty"`
	Demographics   map[string]map[string]map[string]int `firestore:"demographics,omitempty" json:"demographics,omitempty"`
	Summaries      map[string]string                    `firestore:"summaries,omitempty" json:"summaries,omitempty"`

	Report      *types.EvaluationReport   `firestore:"evaluation,omitempty" json:"evaluation,omitempty"`
	Importances []types.FeatureImportance `firestore:"featureImportance,omitempty" json:"feature_importance,omitempty"`

	SegmentationError string `firestore:"segmentationError,omitempty" json:"segmentation_error,omitempty"`
	ModelingError     string `firestore:"modelingError,omitempty" json:"modeling_error,omitempty"`
}

// NewAnalysisDoc flattens an analysis for storage.
func NewAnalysisDoc(a *types.Analysis) AnalysisDoc {
	doc := AnalysisDoc{
		ID:                a.ID,
		CreatedAt:         a.CreatedAt,
		Source:            a.Source,
		Shape:             a.Shape,
		Columns:           a.Columns,
		Sample:            a.Sample,
		Overview:          a.Overview,
		TextualQuestions:  a.Questions.Textual,
		OrdinalQuestions:  a.Questions.Ordinal,
		Totals:            a.Totals,
		ScoreStats:        a.ScoreStats,
		ClusterSummary:    a.ClusterSummary,
		Report:            a.Report,
		Importances:       a.Importances,
		SegmentationError: a.SegmentationError,
		ModelingError:     a.ModelingError,
	}
	if a.Matrix != nil {
		doc.MalformedCells = a.Matrix.MalformedCells
	}
	if a.Assignment != nil {
		doc.ClusterIDs = a.Assignment.IDs
		doc.Inertia = a.Assignment.Inertia
	}
	if len(a.Demographics) > 0 {
		doc.Demographics = make(map[string]map[string]map[string]int, len(a.Demographics))
		for col, ct := range a.Demographics {
			rows := make(map[string]map[string]int, len(ct))
			for category, counts := range ct {
				row := make(map[string]int, len(counts))
				for label, n := range counts {
					row[string(label)] = n
				}
				rows[category] = row
			}
			doc.Demographics[col] = rows
		}
	}
	if len(a.Summaries) > 0 {
		doc.Summaries = make(map[string]string, len(a.Summaries))
		for label, s := range a.Summaries {
			doc.Summaries[string(label)] = s
		}
	}
	return doc
}

// FirestoreStore is the AnalysisStore backed by the "analyses" collection,
// one document per run keyed by the analysis id.
type FirestoreStore struct {
	client *firestore.Client
}

func NewFirestoreStore(client *firestore.Client) *FirestoreStore {
	return &FirestoreStore{client: client}
}

func (s *FirestoreStore) SaveAnalysis(ctx context.Context, a *types.Analysis) error {
	if a.ID == "" {
		return fmt.Errorf("save analysis: empty id")
	}
	doc := NewAnalysisDoc(a)
	if _, err := s.client.Collection(analysesCollection).Doc(a.ID).Set(ctx, doc); err != nil {
		return fmt.Errorf("save analysis %s: %w", a.ID, err)
	}
	logrus.WithField("analysisId", a.ID).Debug("Saved analysis snapshot")
	return nil
}

func (s *FirestoreStore) GetAnalysis(ctx context.Context, id string) (*AnalysisDoc, error) {
	snap, err := s.client.Collection(analysesCollection).Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, fmt.Errorf("analysis %s: %w", id, ErrAnalysisNotFound)
		}
		return nil, fmt.Errorf("get analysis %s: %w", id, err)
	}
	var doc AnalysisDoc
	if err := snap.DataTo(&doc); err != nil {
		return nil, fmt.Errorf("decode analysis %s: %w", id, err)
	}
	return &doc, nil
}

// ListAnalyses returns the most recent snapshots, newest first.
func (s *FirestoreStore) ListAnalyses(ctx context.Context, limit int) ([]AnalysisDoc, error) {
	q := s.client.Collection(analysesCollection).OrderBy("createdAt", firestore.Desc)
	if limit > 0 {
		q = q.Limit(limit)
	}
	iter := q.Documents(ctx)
	defer iter.Stop()

	var out []AnalysisDoc
	for {
		snap, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("iterate analyses: %w", err)
		}
		var doc AnalysisDoc
		if err := snap.DataTo(&doc); err != nil {
			return nil, fmt.Errorf("decode analysis %s: %w", snap.Ref.ID, err)
		}
		out = append(out, doc)
	}
	return out, nil
}
