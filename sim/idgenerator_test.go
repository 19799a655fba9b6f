package sim

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("IDGenerator", func() {
	It("should generate unique IDs", func() {
		gen := GetIDGenerator()

		seen := map[string]bool{}
		for i := 0; i < 1000; i++ {
			id := gen.Generate()
			Expect(seen[id]).To(BeFalse())
			seen[id] = true
		}
	})
})
