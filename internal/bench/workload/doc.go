// Package workload drives a bucketmap.Map from many goroutines and checks
// the result.
//
// Every worker owns a disjoint key range and mirrors its own operations in
// a private shadow map, so each Get, Put and Delete result can be checked
// without coordination. After all workers join, the runner checks that the
// map size equals the number of live shadow keys and that every live key
// reads back its last written value.
package workload
