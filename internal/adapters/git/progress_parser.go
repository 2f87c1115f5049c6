package git

import (
	"bufio"
	"bytes"
	"io"
	"regexp"
	"strconv"
	"strings"

	"tally/internal/domain"
	"tally/internal/ports"
)

// progressLine matches git's progress meter, e.g.
// "Receiving objects:  45% (450/1000), 1.20 MiB | 2.00 MiB/s"
var progressLine = regexp.MustCompile(`^(Receiving objects|Resolving deltas|Updating files|Checking out files):\s+\d+%\s+\((\d+)/(\d+)\)`)

// maxTailLines bounds how much non-progress output is kept for error messages
const maxTailLines = 20

// progressParser turns the stderr stream of `git clone --progress` into
// hook calls. Transfer counters accumulate across the receive and delta
// stages so each transfer hook call sees the whole picture.
type progressParser struct {
	hooks ports.CloneHooks
	stats domain.TransferStats
	tail  []string
}

func newProgressParser(hooks ports.CloneHooks) *progressParser {
	return &progressParser{hooks: hooks}
}

// Consume reads r until EOF, dispatching hooks for each progress update
func (p *progressParser) Consume(r io.Reader) error {
	scanner := bufio.NewScanner(r)
	scanner.Split(scanProgressLines)
	for scanner.Scan() {
		p.handleLine(scanner.Text())
	}
	return scanner.Err()
}

// Tail returns the last non-progress lines git printed
func (p *progressParser) Tail() string {
	return strings.Join(p.tail, "\n")
}

func (p *progressParser) handleLine(line string) {
	line = strings.TrimSpace(line)
	if line == "" {
		return
	}

	m := progressLine.FindStringSubmatch(line)
	if m == nil {
		if !strings.HasPrefix(line, "remote:") {
			p.tail = append(p.tail, line)
			if len(p.tail) > maxTailLines {
				p.tail = p.tail[len(p.tail)-maxTailLines:]
			}
		}
		return
	}

	current, err1 := strconv.Atoi(m[2])
	total, err2 := strconv.Atoi(m[3])
	if err1 != nil || err2 != nil {
		return
	}

	switch m[1] {
	case "Receiving objects":
		p.stats.ReceivedObjects = current
		p.stats.TotalObjects = total
		p.transfer()
	case "Resolving deltas":
		p.stats.IndexedDeltas = current
		p.stats.TotalDeltas = total
		p.transfer()
	default:
		if p.hooks.Checkout != nil {
			p.hooks.Checkout(current, total)
		}
	}
}

func (p *progressParser) transfer() {
	if p.hooks.Transfer != nil {
		p.hooks.Transfer(p.stats)
	}
}

// scanProgressLines splits on either \r or \n; git redraws its meter with \r
func scanProgressLines(data []byte, atEOF bool) (int, []byte, error) {
	if atEOF && len(data) == 0 {
		return 0, nil, nil
	}
	if i := bytes.IndexAny(data, "\r\n"); i >= 0 {
		return i + 1, data[:i], nil
	}
	if atEOF {
		return len(data), data, nil
	}
	return 0, nil, nil
}
