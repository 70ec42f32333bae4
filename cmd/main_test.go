package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"

	"github.com/jrh3k5/multichain-txn-export/internal/chain"
	"github.com/jrh3k5/multichain-txn-export/internal/history"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("loadRegistry", func() {
	It("returns the default registry without an endpoints file", func() {
		registry, err := loadRegistry("")
		Expect(err).ToNot(HaveOccurred())
		Expect(registry.IDs()).To(Equal(chain.DefaultRegistry().IDs()))
	})

	It("applies endpoint overrides from a YAML file", func() {
		endpointsPath := filepath.Join(GinkgoT().TempDir(), "endpoints.yaml")
		Expect(os.WriteFile(endpointsPath, []byte("endpoints:\n  polygon: https://proxy.local/api\n"), 0o600)).To(Succeed())

		registry, err := loadRegistry(endpointsPath)
		Expect(err).ToNot(HaveOccurred())

		descriptor, err := registry.Lookup(chain.Polygon)
		Expect(err).ToNot(HaveOccurred())
		Expect(descriptor.ExplorerURL).To(Equal("https://proxy.local/api"))
	})

	It("fails on a missing endpoints file", func() {
		_, err := loadRegistry(filepath.Join(GinkgoT().TempDir(), "missing.yaml"))
		Expect(err).To(MatchError(ContainSubstring("failed to open endpoints file")))
	})
})

var _ = Describe("loadStore", func() {
	It("fails on a malformed credential file", func() {
		configPath := filepath.Join(GinkgoT().TempDir(), "config.json")
		Expect(os.WriteFile(configPath, []byte("{not json"), 0o600)).To(Succeed())

		_, err := loadStore(configPath)
		Expect(err).To(MatchError(ContainSubstring("failed to load credentials")))
	})
})

var _ = Describe("writeSummary", func() {
	It("lists every chain and the totals", func() {
		out := &bytes.Buffer{}
		writeSummary(out, []history.ChainResult{
			{Chain: chain.Ethereum, Status: history.StatusSucceeded, Records: 3, OutputPath: "output/ethereum_transactions.csv"},
			{Chain: chain.Polygon, Status: history.StatusFailed, Err: errors.New("connection reset")},
			{Chain: "unknownchain", Status: history.StatusSkipped},
		})

		Expect(out.String()).To(Equal("Export summary:\n" +
			"  ✔ ethereum: 3 record(s) written to output/ethereum_transactions.csv\n" +
			"  ✘ polygon: connection reset\n" +
			"  - unknownchain: not supported\n" +
			"1 succeeded, 1 failed, 1 skipped\n"))
	})
})

var _ = Describe("progressReporter", func() {
	It("finishes the spinner when a chain is done", func() {
		out := &bytes.Buffer{}
		progress := newProgressReporter(out)

		progress.Add(chain.Ethereum, 10000)
		Expect(progress.bar).ToNot(BeNil())

		progress.ChainDone(history.ChainResult{Chain: chain.Ethereum, Status: history.StatusSucceeded})
		Expect(progress.bar).To(BeNil())

		progress.Add(chain.Polygon, 5)
		Expect(progress.bar).ToNot(BeNil())
		Expect(progress.chain).To(Equal(chain.Polygon))

		progress.Finish()
		Expect(progress.bar).To(BeNil())
	})
})

var _ = Describe("requireValue", func() {
	It("rejects blank input", func() {
		Expect(requireValue("  ")).To(HaveOccurred())
		Expect(requireValue("0xABC")).To(Succeed())
	})
})
