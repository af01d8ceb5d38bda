package presenter

import (
	"bufio"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/WangYihang/sdscan-analytics/pkg/aggregate"
	"github.com/WangYihang/sdscan-analytics/pkg/report"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/lipgloss"
	"github.com/miekg/dns"
)

// Output formats
const (
	TxtFormatPlain = "plain"
	TxtFormatZone  = "zone"
	PlotFormatCSV  = "csv"
	PlotFormatBars = "bars"
)

const (
	minBarWidth     = 10
	barLabelColumns = 24
)

// Options configures the text presenter
type Options struct {
	TxtFormat  string
	PlotFormat string
	// Width is the terminal width used to size plot bars
	Width int
}

// TextPresenter renders reports as plain text lines
type TextPresenter struct {
	out     io.Writer
	options Options
}

// NewTextPresenter creates a presenter writing to out
func NewTextPresenter(out io.Writer, options Options) *TextPresenter {
	if options.TxtFormat == "" {
		options.TxtFormat = TxtFormatPlain
	}
	if options.PlotFormat == "" {
		options.PlotFormat = PlotFormatCSV
	}
	return &TextPresenter{out: out, options: options}
}

func (p *TextPresenter) writeLines(fn func(w *bufio.Writer)) error {
	w := bufio.NewWriter(p.out)
	fn(w)
	return w.Flush()
}

// RenderTxt prints every instance carrying TXT data
func (p *TextPresenter) RenderTxt(entries []report.TxtEntry) error {
	return p.writeLines(func(w *bufio.Writer) {
		for _, entry := range entries {
			if p.options.TxtFormat == TxtFormatZone {
				writeZoneEntry(w, entry)
				continue
			}
			fmt.Fprintln(w, entry.QName)
			fmt.Fprintln(w, "Name:", entry.Instance.Name, "Target:", entry.Instance.Target)
			fmt.Fprintln(w, strings.Join(entry.Instance.Txt, " "))
		}
	})
}

// writeZoneEntry prints the instance as SRV and TXT resource records
func writeZoneEntry(w io.Writer, entry report.TxtEntry) {
	instance := entry.Instance
	name := dns.Fqdn(instance.Name)
	srv := &dns.SRV{
		Hdr:      dns.RR_Header{Name: name, Rrtype: dns.TypeSRV, Class: dns.ClassINET},
		Priority: instance.Priority,
		Weight:   instance.Weight,
		Port:     instance.Port,
		Target:   dns.Fqdn(instance.Target),
	}
	txt := &dns.TXT{
		Hdr: dns.RR_Header{Name: name, Rrtype: dns.TypeTXT, Class: dns.ClassINET},
		Txt: instance.Txt,
	}
	fmt.Fprintf(w, "; %s %s %s\n", entry.QName, entry.Probe, entry.Service)
	fmt.Fprintln(w, srv.String())
	fmt.Fprintln(w, txt.String())
}

// RenderPlot prints threshold,count pairs or a bar per threshold
func (p *TextPresenter) RenderPlot(points []report.PlotPoint) error {
	if p.options.PlotFormat == PlotFormatBars {
		return p.renderBars(points)
	}
	return p.writeLines(func(w *bufio.Writer) {
		for _, point := range points {
			fmt.Fprintf(w, "%d,%d\n", point.Threshold, point.Count)
		}
	})
}

func (p *TextPresenter) renderBars(points []report.PlotPoint) error {
	maxCount := 0
	for _, point := range points {
		if point.Count > maxCount {
			maxCount = point.Count
		}
	}

	width := p.options.Width - barLabelColumns
	if width < minBarWidth {
		width = minBarWidth
	}
	bar := progress.New(
		progress.WithDefaultGradient(),
		progress.WithWidth(width),
		progress.WithoutPercentage(),
	)

	return p.writeLines(func(w *bufio.Writer) {
		for _, point := range points {
			ratio := 0.0
			if maxCount > 0 {
				ratio = float64(point.Count) / float64(maxCount)
			}
			fmt.Fprintf(w, "> %-6d %s %d\n", point.Threshold, bar.ViewAs(ratio), point.Count)
		}
	})
}

// RenderScan prints one service name per line
func (p *TextPresenter) RenderScan(services []string) error {
	return p.writeLines(func(w *bufio.Writer) {
		for _, service := range services {
			fmt.Fprintln(w, service)
		}
	})
}

// RenderServicesByDomain prints "domain<TAB>service,service" lines
func (p *TextPresenter) RenderServicesByDomain(entries []aggregate.DomainServices) error {
	return p.writeLines(func(w *bufio.Writer) {
		for _, entry := range entries {
			fmt.Fprintf(w, "%s\t%s\n", entry.Domain, strings.Join(sorted(entry.Services.ToSlice()), ","))
		}
	})
}

// RenderDomainsByService prints "service<TAB>count<TAB>domain,domain" lines
func (p *TextPresenter) RenderDomainsByService(entries []aggregate.ServiceDomains) error {
	return p.writeLines(func(w *bufio.Writer) {
		for _, entry := range entries {
			fmt.Fprintf(w, "%s\t%d\t%s\n", entry.Service, entry.Domains.Cardinality(), strings.Join(sorted(entry.Domains.ToSlice()), ","))
		}
	})
}

// RenderSummary prints a boxed overview of the run
func (p *TextPresenter) RenderSummary(s *report.Summary) error {
	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#7D56F4"))

	labelStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("#999999"))

	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("#874BFD")).
		Padding(0, 1)

	rows := [][2]string{
		{"Records loaded", fmt.Sprint(s.RecordsLoaded)},
		{"Records kept", fmt.Sprint(s.RecordsKept)},
		{"Domains", fmt.Sprint(s.Domains)},
		{"Registrable domains", fmt.Sprint(s.RegistrableDomains)},
		{"Distinct services", fmt.Sprint(s.DistinctServices)},
	}

	var labels, values []string
	for _, row := range rows {
		labels = append(labels, labelStyle.Render(row[0]))
		values = append(values, row[1])
	}
	table := lipgloss.JoinHorizontal(lipgloss.Top,
		strings.Join(labels, "\n"),
		"   ",
		lipgloss.NewStyle().Align(lipgloss.Right).Render(strings.Join(values, "\n")),
	)

	sections := []string{titleStyle.Render("Service Discovery Scan Summary"), "", table}
	if len(s.TopServices) > 0 {
		sections = append(sections, "", titleStyle.Render(fmt.Sprintf("Top %d services", len(s.TopServices))))
		for i, sc := range s.TopServices {
			sections = append(sections, fmt.Sprintf("%3d. %-28s %d", i+1, sc.Service, sc.Domains))
		}
	}

	_, err := fmt.Fprintln(p.out, boxStyle.Render(lipgloss.JoinVertical(lipgloss.Left, sections...)))
	return err
}

func sorted(values []string) []string {
	sort.Strings(values)
	return values
}
