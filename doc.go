// Package hdbscan implements HDBSCAN* hierarchical density-based clustering
// with GLOSH outlier scores and exemplar-based prediction.
//
// Training builds an extended minimum spanning tree over mutual reachability
// distances, decomposes it into a cluster hierarchy, selects a flat
// clustering by stability propagation, scores every point for outlierness,
// and retains per-cluster exemplar points. Noise points are assigned the
// label 0.
//
// Basic usage:
//
//	cfg := hdbscan.DefaultConfig()
//	cfg.MinClusterSize = 10
//	model, err := hdbscan.Train(data, cfg)
//	// model.Labels[i] is the cluster label for point i (0 = noise)
//	// model.OutlierScores[i] is how outlier-like point i is (0 = inlier)
//
// The trained model predicts cluster membership for unseen points by
// finding the nearest cluster exemplar. A point farther from every exemplar
// than that exemplar's admission radius is predicted as noise:
//
//	pred, err := model.Predict(point)
//	// pred.Label, pred.OutlierScore
//
// See:
//
//	R.J.G.B. Campello, D. Moulavi, A. Zimek and J. Sander
//	"Hierarchical Density Estimates for Data Clustering, Visualization,
//	and Outlier Detection", ACM Trans. on Knowledge Discovery from Data,
//	Vol 10, 1 (July 2015), 1-51.
package hdbscan
