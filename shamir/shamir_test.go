package shamir_test

import (
	"bytes"
	"encoding/json"
	"math/rand"
	"time"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"

	. "github.com/glottologist/seedmixer/shamir"
	. "github.com/glottologist/seedmixer/shamirutil"
)

//
// Let n and k be given where n >= k. Shamir secret sharing over the fixed
// prime field should satisfy:
//
//  1. Any element of the field can be shared into n shares such that any
//     subset of k or more of them reconstructs the original secret.
//
//  2. Reconstructing from fewer than k shares does not error, but yields a
//     value inconsistent with the true secret (no threshold awareness
//     without CheckedOpen).
//
//  3. A share whose index is outside the Reconstructor's index set, or a
//     share set containing a duplicate index, is rejected with an error.
//
var _ = Describe("Shamir Secret Sharing", func() {
	rand.Seed(time.Now().UnixNano())

	Context("Sharing consistency", func() {
		trials := 100
		n := 20

		Specify("any qualified subset reconstructs the secret correctly", func() {
			indices := RandomIndices(n)
			shares := make(Shares, n)
			sharer := NewSharer(indices)
			reconstructor := NewReconstructor(indices)

			for i := 0; i < trials; i++ {
				k := RandRange(1, n)
				secret := RandomFn()

				Expect(sharer.Share(&shares, secret, k)).To(Succeed())

				recon, err := reconstructor.CheckedOpen(shares[:k], k)
				Expect(err).ToNot(HaveOccurred())
				Expect(recon.Eq(&secret)).To(BeTrue())

				Expect(SharesAreConsistent(shares, &reconstructor, k)).To(BeTrue())
			}
		})

		Specify("shuffled shares still reconstruct correctly", func() {
			indices := RandomIndices(n)
			shares := make(Shares, n)
			sharer := NewSharer(indices)
			reconstructor := NewReconstructor(indices)

			k := RandRange(2, n)
			secret := RandomFn()
			Expect(sharer.Share(&shares, secret, k)).To(Succeed())

			Shuffle(shares)
			recon, err := reconstructor.CheckedOpen(shares[:k], k)
			Expect(err).ToNot(HaveOccurred())
			Expect(recon.Eq(&secret)).To(BeTrue())
		})
	})

	Context("Threshold enforcement", func() {
		It("rejects reconstruction attempts with fewer than k shares", func() {
			n, k := 10, 5
			indices := RandomIndices(n)
			shares := make(Shares, n)
			sharer := NewSharer(indices)
			reconstructor := NewReconstructor(indices)

			secret := RandomFn()
			Expect(sharer.Share(&shares, secret, k)).To(Succeed())

			_, err := reconstructor.CheckedOpen(shares[:k-1], k)
			Expect(err).To(HaveOccurred())
		})

		It("rejects a threshold larger than the number of indices", func() {
			indices := RandomIndices(5)
			shares := make(Shares, 5)
			sharer := NewSharer(indices)

			err := sharer.Share(&shares, RandomFn(), 6)
			Expect(err).To(HaveOccurred())
		})
	})

	Context("Malformed share sets", func() {
		It("rejects a share with an index outside the index set", func() {
			n, k := 10, 5
			indices := RandomIndices(n)
			shares := make(Shares, n)
			sharer := NewSharer(indices)
			reconstructor := NewReconstructor(indices)

			Expect(sharer.Share(&shares, RandomFn(), k)).To(Succeed())
			shares[0] = NewShare(RandomFn(), shares[0].Value())

			_, err := reconstructor.Open(shares[:k])
			Expect(err).To(HaveOccurred())
		})

		It("rejects a share set with a duplicate index", func() {
			n, k := 10, 5
			indices := RandomIndices(n)
			shares := make(Shares, n)
			sharer := NewSharer(indices)
			reconstructor := NewReconstructor(indices)

			Expect(sharer.Share(&shares, RandomFn(), k)).To(Succeed())
			AddDuplicateIndex(shares)

			_, err := reconstructor.Open(shares)
			Expect(err).To(HaveOccurred())
		})
	})

	Context("Marshalling", func() {
		It("round-trips a share through surge binary marshalling", func() {
			indices := RandomIndices(3)
			shares := make(Shares, 3)
			sharer := NewSharer(indices)
			Expect(sharer.Share(&shares, RandomFn(), 2)).To(Succeed())

			var buf bytes.Buffer
			_, err := shares[0].Marshal(&buf, ShareSizeBytes)
			Expect(err).ToNot(HaveOccurred())

			var got Share
			_, err = got.Unmarshal(&buf, ShareSizeBytes)
			Expect(err).ToNot(HaveOccurred())
			Expect(got.Eq(&shares[0])).To(BeTrue())
		})

		It("round-trips a field element through the bigint JSON codec", func() {
			f := RandomFn()
			bs, err := json.Marshal(f)
			Expect(err).ToNot(HaveOccurred())

			var got Fn
			Expect(json.Unmarshal(bs, &got)).To(Succeed())
			Expect(got.Eq(&f)).To(BeTrue())
		})

		It("encodes the zero element with sign 0", func() {
			var zero Fn
			bs, err := json.Marshal(zero)
			Expect(err).ToNot(HaveOccurred())
			Expect(string(bs)).To(Equal(`[0,[]]`))
		})
	})
})
