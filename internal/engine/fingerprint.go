package engine

import (
	"hash/fnv"
	"math/bits"

	"github.com/similarity-go/similarity/domain"
)

// fingerprintSeeds are the distinct seeds mixed into the 3 Bloom hash
// functions (spec §4.5's "3 hash functions").
var fingerprintSeeds = [domain.BloomHashes]uint64{
	0x9e3779b97f4a7c15,
	0xc2b2ae3d27d4eb4f,
	0x165667b19e3779f9,
}

// BuildFingerprint derives a structural summary from t in a single
// pre-order pass (the result does not depend on visiting order): a label
// histogram keyed by every label seen, plus a Bloom filter of
// one-level-deep (parent_label, child_label) pairs.
func BuildFingerprint(t *domain.TreeNode) *domain.Fingerprint {
	fp := domain.NewFingerprint()
	if t == nil {
		return fp
	}
	t.Walk(func(n *domain.TreeNode) {
		fp.Histogram[n.Label]++
		fp.Total++
		for _, c := range n.Children {
			addBloomPair(fp, n.Label, c.Label)
		}
	})
	return fp
}

func addBloomPair(fp *domain.Fingerprint, parent, child string) {
	key := parent + "\x00" + child
	for _, seed := range fingerprintSeeds {
		setBit(&fp.Bloom, bloomHash(key, seed))
	}
}

func bloomHash(key string, seed uint64) uint64 {
	h := fnv.New64a()
	var seedBytes [8]byte
	for i := range seedBytes {
		seedBytes[i] = byte(seed >> (8 * i))
	}
	h.Write(seedBytes[:])
	h.Write([]byte(key))
	return h.Sum64() % domain.BloomBits
}

func setBit(bloom *[domain.BloomWords]uint64, bit uint64) {
	word := bit / 64
	offset := bit % 64
	bloom[word] |= 1 << offset
}

// Similarity implements the fp_sim formula of spec §4.5: an equally
// weighted blend of histogram L1 similarity and Bloom-filter Jaccard
// similarity.
func Similarity(a, b *domain.Fingerprint) float64 {
	histSim := histogramSimilarity(a, b)
	bloomSim := bloomSimilarity(a, b)
	return 0.5*histSim + 0.5*bloomSim
}

func histogramSimilarity(a, b *domain.Fingerprint) float64 {
	sum := a.Total + b.Total
	if sum == 0 {
		return 1
	}
	l1 := 0
	seen := make(map[string]bool, len(a.Histogram)+len(b.Histogram))
	for label, ca := range a.Histogram {
		cb := b.Histogram[label]
		l1 += absInt(ca - cb)
		seen[label] = true
	}
	for label, cb := range b.Histogram {
		if seen[label] {
			continue
		}
		l1 += absInt(cb)
	}
	return 1 - float64(l1)/float64(sum)
}

func bloomSimilarity(a, b *domain.Fingerprint) float64 {
	var and, or int
	for i := 0; i < domain.BloomWords; i++ {
		and += bits.OnesCount64(a.Bloom[i] & b.Bloom[i])
		or += bits.OnesCount64(a.Bloom[i] | b.Bloom[i])
	}
	if or == 0 {
		return 1
	}
	return float64(and) / float64(or)
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// Admits reports whether the fingerprint prefilter lets this pair through at
// the given threshold: a pair is admitted iff Similarity(a, b) >= threshold,
// with no extra margin.
func Admits(a, b *domain.Fingerprint, threshold float64) bool {
	return Similarity(a, b) >= threshold
}
