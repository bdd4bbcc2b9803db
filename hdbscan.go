package hdbscan

import (
	"fmt"
	"math"
	"runtime"
)

// Config controls HDBSCAN* training.
// Start with [DefaultConfig] and override the fields you need.
type Config struct {
	// MinClusterSize is the smallest group of points considered a cluster.
	// Smaller values find more clusters; larger values find fewer, denser
	// ones. Must be >= 1. Default: 5.
	MinClusterSize int

	// K is the number of nearest neighbors used in the initial density
	// approximation, counting the point itself. K=1 makes every core
	// distance zero. Set to 0 to default to MinClusterSize. Default: 0.
	K int

	// Metric is the distance function used to measure point similarity.
	// Built-in: EuclideanMetric, ManhattanMetric, CosineMetric. Use
	// DistanceFunc to wrap a custom function. Default: EuclideanMetric.
	Metric DistanceMetric

	// Workers controls the number of goroutines for the core-distance
	// stage, the only parallelizable step. 0 means runtime.NumCPU().
	Workers int
}

// DefaultConfig returns a Config with reasonable defaults.
func DefaultConfig() Config {
	return Config{
		MinClusterSize: 5,
		Metric:         EuclideanMetric{},
	}
}

// applyDefaults fills in zero-valued config fields with their defaults.
func applyDefaults(cfg *Config) {
	if cfg.K == 0 {
		cfg.K = cfg.MinClusterSize
	}
	if cfg.Metric == nil {
		cfg.Metric = EuclideanMetric{}
	}
	if cfg.Workers == 0 {
		cfg.Workers = runtime.NumCPU()
	}
}

// validateConfig checks that cfg fields are valid and returns a descriptive
// error if not.
func validateConfig(cfg *Config) error {
	if cfg.MinClusterSize < 1 {
		return fmt.Errorf("hdbscan: MinClusterSize must be >= 1, got %d", cfg.MinClusterSize)
	}
	if cfg.K < 1 {
		return fmt.Errorf("hdbscan: K must be >= 1 (0 means default to MinClusterSize), got %d", cfg.K)
	}
	if cfg.Workers < 0 {
		return fmt.Errorf("hdbscan: Workers must be >= 0, got %d", cfg.Workers)
	}
	return nil
}

// Prediction is the model's assignment of a single unseen point.
type Prediction struct {
	// Label is the assigned cluster label, or 0 for noise.
	Label int

	// OutlierScore is the score inherited from the nearest exemplar, or the
	// model's noise ceiling when the point is predicted as noise.
	OutlierScore float64
}

// Model is a trained HDBSCAN* clustering.
type Model struct {
	// Labels assigns each training point a cluster label, in original point
	// order. 0 means noise.
	Labels []int

	// OutlierScores is the GLOSH score for each training point, parallel to
	// Labels. Values near 0 indicate inliers.
	OutlierScores []float64

	// Exemplars are the retained representative points used by Predict.
	Exemplars []ClusterExemplar

	// NoiseOutlierScore is the score assigned to points predicted as noise.
	NoiseOutlierScore float64

	metric DistanceMetric
	dims   int
}

// Train runs HDBSCAN* clustering on the given data and returns the trained
// model. Each element is a point (float64 slice); all points must have the
// same dimensionality. Returns an error if the config is invalid, the data
// is malformed, or internal bookkeeping detects an inconsistency.
func Train(data [][]float64, cfg Config) (*Model, error) {
	applyDefaults(&cfg)
	if err := validateConfig(&cfg); err != nil {
		return nil, err
	}

	n := len(data)
	if n == 0 {
		return &Model{
			Labels:            []int{},
			OutlierScores:     []float64{},
			NoiseOutlierScore: maxOutlierScore,
			metric:            cfg.Metric,
		}, nil
	}

	dims := len(data[0])
	if dims == 0 {
		return nil, fmt.Errorf("hdbscan: points must have at least one dimension")
	}
	for i, row := range data {
		if len(row) != dims {
			return nil, fmt.Errorf("hdbscan: point %d has %d dimensions, want %d", i, len(row), dims)
		}
	}

	neighbors := NewBruteForceNeighbors(data, cfg.Metric, cfg.Workers)
	coreDistances := ComputeCoreDistances(neighbors, n, cfg.K)

	emst := BuildEMST(data, coreDistances, cfg.Metric)

	res, err := computeHierarchyAndClusterTree(emst, cfg.MinClusterSize)
	if err != nil {
		return nil, err
	}
	propagateTree(res.clusters)

	labels := findProminentClusters(res, n)
	scores := calculateOutlierScores(res)
	exemplars := computeExemplars(data, labels, scores, cfg.Metric)

	return &Model{
		Labels:            labels,
		OutlierScores:     scores,
		Exemplars:         exemplars,
		NoiseOutlierScore: noisePointsOutlierScore(labels, scores),
		metric:            cfg.Metric,
		dims:              dims,
	}, nil
}

// Predict assigns an unseen point to a cluster by scanning the exemplars
// for the minimum distance. A point farther from every exemplar than that
// exemplar's admission radius is predicted as noise and receives the
// model's noise outlier score; otherwise it inherits the nearest exemplar's
// label and score.
func (m *Model) Predict(point []float64) (Prediction, error) {
	if len(point) != m.dims {
		return Prediction{}, fmt.Errorf("hdbscan: point has %d dimensions, model expects %d", len(point), m.dims)
	}
	active := false
	for _, v := range point {
		if v != 0 {
			active = true
			break
		}
	}
	if !active {
		return Prediction{}, fmt.Errorf("hdbscan: point has no active features")
	}

	minDistance := math.Inf(1)
	pred := Prediction{Label: NoiseLabel}
	isNoise := true

	for _, exemplar := range m.Exemplars {
		distance := m.metric.Distance(exemplar.Features, point)
		if isNoise && distance <= exemplar.MaxDistToEdge {
			isNoise = false
		}
		if distance < minDistance {
			minDistance = distance
			pred.Label = exemplar.Label
			pred.OutlierScore = exemplar.OutlierScore
		}
	}

	if isNoise {
		return Prediction{Label: NoiseLabel, OutlierScore: m.NoiseOutlierScore}, nil
	}
	return pred, nil
}
