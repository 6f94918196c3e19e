package payload

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"style-watcher/internal/models"
)

const (
	yesterdayMarker = "昨日"
	dateLayout      = "2006-01-02"
)

// DefaultSizes is the size vocabulary used by Parse.
var DefaultSizes = []string{"S", "M", "L", "XL", "2XL", "3XL", "4XL"}

var (
	sevenDayPattern = regexp.MustCompile(`近\s*7\s*天[^\n:：]*[:：]\s*(\d[\d,]*)`)
	sevenDayMarker  = regexp.MustCompile(`近\s*7\s*天`)
	dateLinePattern = regexp.MustCompile(`^(\d{4}-\d{2}-\d{2})\s+(.*)$`)
	quantityPattern = regexp.MustCompile(`\s*[:：]\s*(\d[\d,]*)\s*件?\s*$`)
)

// Parser extracts a ParsedPayload from normalized response text.
type Parser struct {
	sizes map[string]string // upper-cased token -> canonical size
}

// NewParser returns a parser recognising the given size tokens. An empty
// vocabulary falls back to DefaultSizes.
func NewParser(sizes []string) *Parser {
	if len(sizes) == 0 {
		sizes = DefaultSizes
	}
	p := &Parser{sizes: make(map[string]string, len(sizes))}
	for _, s := range sizes {
		s = strings.TrimSpace(s)
		if s == "" {
			continue
		}
		p.sizes[strings.ToUpper(s)] = s
	}
	return p
}

var defaultParser = NewParser(nil)

// Parse runs the default parser.
func Parse(text string) models.ParsedPayload {
	return defaultParser.Parse(text)
}

// Parse never fails: anything it cannot find is left empty.
// Records keep the order in which they appear in text.
func (p *Parser) Parse(text string) models.ParsedPayload {
	var out models.ParsedPayload

	out.Title, out.Yesterday = splitHeadline(text)
	out.SevenDayTotal = sevenDayTotal(text)
	out.Records = p.records(text)

	return out
}

// splitHeadline returns the text before the first yesterday marker and the
// marker's own segment, which ends at the line end or at a seven-day marker.
func splitHeadline(text string) (title, yesterday string) {
	idx := strings.Index(text, yesterdayMarker)
	if idx < 0 {
		return "", ""
	}

	title = strings.TrimSpace(text[:idx])

	rest := text[idx:]
	if nl := strings.IndexByte(rest, '\n'); nl >= 0 {
		rest = rest[:nl]
	}
	if loc := sevenDayMarker.FindStringIndex(rest); loc != nil && loc[0] > 0 {
		rest = rest[:loc[0]]
	}
	return title, strings.TrimSpace(rest)
}

func sevenDayTotal(text string) *int {
	m := sevenDayPattern.FindStringSubmatch(text)
	if m == nil {
		return nil
	}
	n, err := strconv.Atoi(strings.ReplaceAll(m[1], ",", ""))
	if err != nil {
		return nil
	}
	return &n
}

type recordChunk struct {
	date time.Time
	body string
}

// records groups lines into chunks: a line starting with a valid date opens a
// chunk and following lines are appended to it until the next date line.
// Summary lines are skipped wherever they appear.
func (p *Parser) records(text string) []models.SaleRecord {
	var chunks []recordChunk

	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if m := dateLinePattern.FindStringSubmatch(line); m != nil {
			if date, err := time.Parse(dateLayout, m[1]); err == nil {
				chunks = append(chunks, recordChunk{date: date, body: m[2]})
				continue
			}
		}
		if len(chunks) == 0 || line == "" || isSummaryLine(line) {
			continue
		}
		last := &chunks[len(chunks)-1]
		last.body = strings.TrimSpace(last.body + " " + line)
	}

	records := make([]models.SaleRecord, 0, len(chunks))
	for _, c := range chunks {
		records = append(records, p.record(c))
	}
	return records
}

// isSummaryLine reports lines holding the headline figures, which never
// continue a record.
func isSummaryLine(line string) bool {
	return strings.Contains(line, yesterdayMarker) || sevenDayMarker.MatchString(line)
}

func (p *Parser) record(c recordChunk) models.SaleRecord {
	rec := models.SaleRecord{Date: c.date}

	body := c.body
	if loc := quantityPattern.FindStringSubmatchIndex(body); loc != nil {
		if n, err := strconv.Atoi(strings.ReplaceAll(body[loc[2]:loc[3]], ",", "")); err == nil {
			rec.Quantity = n
		}
		body = body[:loc[0]]
	}

	fields := strings.Fields(body)
	sizeAt := -1
	for i, f := range fields {
		if canonical, ok := p.sizes[strings.ToUpper(f)]; ok {
			rec.Size = canonical
			sizeAt = i
			break
		}
	}

	if sizeAt < 0 {
		rec.ItemName = strings.Join(fields, " ")
		return rec
	}

	rec.ItemName = strings.Join(fields[:sizeAt], " ")
	if sizeAt+1 < len(fields) {
		rec.Color = fields[sizeAt+1]
	}
	return rec
}
