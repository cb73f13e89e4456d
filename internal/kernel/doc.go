// Package kernel implements the process-wide semantic processing core.
//
// A Kernel turns text into deterministic embeddings, caches embeddings and
// pairwise similarity scores in bounded LRU caches, and derives
// nearest-neighbor rankings, relationship graphs, and thematic clusters from
// the cached comparisons. The kernel performs no I/O: callers hand it plain
// strings and receive vectors, scores, and graphs.
//
// Similarity is the single authorized path to a similarity value. The
// ranker, graph builder, and theme discoverer all go through it, so every
// score benefits from (and populates) the same caches, and symmetry and
// identity hold everywhere by construction.
package kernel
