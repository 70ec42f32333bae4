package main

import (
	"fmt"
	"io"

	"github.com/jrh3k5/multichain-txn-export/internal/chain"
	"github.com/jrh3k5/multichain-txn-export/internal/history"
	"github.com/schollz/progressbar/v3"
)

// progressReporter shows a spinner per chain counting the records fetched so far.
type progressReporter struct {
	out   io.Writer
	chain chain.ID
	bar   *progressbar.ProgressBar
}

func newProgressReporter(out io.Writer) *progressReporter {
	return &progressReporter{out: out}
}

func (p *progressReporter) Add(chainID chain.ID, fetched int) {
	if p.bar == nil || p.chain != chainID {
		p.Finish()

		p.chain = chainID
		p.bar = progressbar.NewOptions(-1,
			progressbar.OptionSetWriter(p.out),
			progressbar.OptionEnableColorCodes(true),
			progressbar.OptionSetDescription(fmt.Sprintf("[cyan]%s[reset] records", chainID)),
			progressbar.OptionSpinnerType(14),
			progressbar.OptionShowCount(),
			progressbar.OptionClearOnFinish(),
		)
	}

	_ = p.bar.Add(fetched)
}

// ChainDone clears the spinner so prompts and logs for the next chain start on a clean line.
func (p *progressReporter) ChainDone(history.ChainResult) {
	p.Finish()
}

func (p *progressReporter) Finish() {
	if p.bar == nil {
		return
	}

	_ = p.bar.Finish()
	p.bar = nil
}
