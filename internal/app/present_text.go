package app

import (
	"fmt"
	"io"
	"net/url"
	"sort"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"go.trai.ch/matchview/internal/core/domain"
	"go.trai.ch/matchview/internal/engine/views"
	"go.trai.ch/matchview/internal/ui/output"
	"go.trai.ch/matchview/internal/ui/style"
)

// textPresenter renders views as aligned text for terminals and logs.
type textPresenter struct {
	w        io.Writer
	renderer *lipgloss.Renderer

	title  lipgloss.Style
	label  lipgloss.Style
	muted  lipgloss.Style
	good   lipgloss.Style
	failed lipgloss.Style
}

func newTextPresenter(w io.Writer, plain bool) *textPresenter {
	r := output.NewRenderer(w, plain)
	return &textPresenter{
		w:        w,
		renderer: r,
		title:    r.NewStyle().Foreground(style.Iris).Bold(true),
		label:    r.NewStyle().Bold(true),
		muted:    r.NewStyle().Foreground(style.Slate),
		good:     r.NewStyle().Foreground(style.Green),
		failed:   r.NewStyle().Foreground(style.Red),
	}
}

func (p *textPresenter) write(b *strings.Builder) error {
	_, err := io.WriteString(p.w, b.String())
	return err
}

func (p *textPresenter) score(v float64) string {
	return p.renderer.NewStyle().Foreground(style.ScoreColor(v)).Render(strconv.FormatFloat(v, 'f', 1, 64))
}

func (p *textPresenter) heading(b *strings.Builder, job *domain.JobInfo) {
	fmt.Fprintf(b, "%s %s %s\n", p.title.Render("Job "+job.ID), p.muted.Render(job.Kind.String()), p.status(job))
}

func (p *textPresenter) status(job *domain.JobInfo) string {
	switch job.Status() {
	case domain.StatusFailed:
		return p.failed.Render(style.Cross + " " + domain.StatusFailed)
	case domain.StatusFinished:
		return p.good.Render(style.Check + " " + domain.StatusFinished)
	}
	if job.Started() {
		return style.Dot + " " + domain.StatusInProgress
	}
	return style.Circle + " " + domain.StatusInProgress
}

func (p *textPresenter) section(b *strings.Builder, name string, page *domain.Page) {
	b.WriteString("\n")
	if page == nil {
		b.WriteString(p.label.Render(name) + "\n")
		return
	}
	fmt.Fprintf(b, "%s %s\n", p.label.Render(name), p.muted.Render("("+pageSummary(*page)+")"))
}

func (p *textPresenter) nextPage(b *strings.Builder, page *domain.Page) {
	if page != nil && page.HasNext() {
		fmt.Fprintf(b, "  %s %s=%d\n", p.muted.Render("next page:"), page.Param, page.Number+1)
	}
}

func pageSummary(p domain.Page) string {
	if p.Start == p.End {
		return fmt.Sprintf("none of %d, page %d/%d", p.Total, p.Number, p.Pages())
	}
	return fmt.Sprintf("%d-%d of %d, page %d/%d", p.Start+1, p.End, p.Total, p.Number, p.Pages())
}

// table writes rows with columns padded to their widest cell.
func (p *textPresenter) table(b *strings.Builder, header []string, rows [][]string) {
	if len(rows) == 0 {
		b.WriteString("  " + p.muted.Render("none") + "\n")
		return
	}
	widths := make([]int, len(header))
	for i, h := range header {
		widths[i] = lipgloss.Width(h)
	}
	for _, row := range rows {
		for i, cell := range row {
			widths[i] = max(widths[i], lipgloss.Width(cell))
		}
	}

	line := func(cells []string, render func(string) string) {
		b.WriteString(" ")
		for i, cell := range cells {
			b.WriteString(" ")
			b.WriteString(render(cell))
			if i < len(cells)-1 {
				b.WriteString(strings.Repeat(" ", widths[i]-lipgloss.Width(cell)+1))
			}
		}
		b.WriteString("\n")
	}
	line(header, func(s string) string { return p.muted.Render(s) })
	for _, row := range rows {
		line(row, func(s string) string { return s })
	}
}

func describeSample(s domain.Sample) string {
	name := s.Filename
	if name == "" {
		name = shortHash(s.SHA256)
	}
	return fmt.Sprintf("%s (sample %d, %s %s)", name, s.ID, s.Family, s.Version)
}

func shortHash(sha string) string {
	if len(sha) > 12 {
		return sha[:12]
	}
	return sha
}

// View implements presenter.
func (p *textPresenter) View(v views.View, _ url.Values) error {
	var b strings.Builder
	p.heading(&b, v.JobInfo())
	switch v := v.(type) {
	case *views.InProgressView:
		fmt.Fprintf(&b, "  %s %.0f%%\n", p.muted.Render("progress"), v.Job.Progress*100)
		b.WriteString("  result not available yet\n")
	case *views.MatchesView:
		p.matches(&b, v)
	case *views.FunctionVsView:
		p.functionVs(&b, v)
	case *views.BlocksView:
		p.blocks(&b, v)
	case *views.CrossView:
		p.cross(&b, v)
	case *views.SampleRedirectView:
		fmt.Fprintf(&b, "  added sample %d %s matchview sample %d\n", v.SampleID, style.Arrow, v.SampleID)
	}
	return p.write(&b)
}

func (p *textPresenter) matches(b *strings.Builder, v *views.MatchesView) {
	fmt.Fprintf(b, "  %s %s\n", p.muted.Render("reference"), describeSample(v.Result.Reference))
	switch v.Narrowing {
	case views.NarrowFamily:
		fmt.Fprintf(b, "  %s %s (family %d)\n", p.muted.Render("narrowed"), v.Family.Name, v.Family.ID)
	case views.NarrowSample:
		fmt.Fprintf(b, "  %s %s\n", p.muted.Render("narrowed"), describeSample(*v.Sample))
	case views.NarrowFunction:
		fmt.Fprintf(b, "  %s %s (function %d at 0x%x)\n", p.muted.Render("narrowed"), v.Function.Name, v.Function.ID, v.Function.Offset)
		fmt.Fprintf(b, "  %s %d families, %d functions\n", p.muted.Render("matched"), v.FamilyCount, v.MatchedFunctions)
	case views.NarrowNone:
		if v.FamilyPage != nil {
			fmt.Fprintf(b, "  %s %d families\n", p.muted.Render("matched"), v.FamilyCount)
		}
	}
	if v.DiagramPath != "" {
		fmt.Fprintf(b, "  %s %s\n", p.muted.Render("diagram"), v.DiagramPath)
	}

	if v.FamilyPage != nil {
		p.section(b, "Families", v.FamilyPage)
		rows := make([][]string, 0, len(v.Families))
		for _, m := range v.Families {
			rows = append(rows, []string{
				strconv.Itoa(m.FamilyID), m.Family, strconv.Itoa(m.SampleID), m.Version,
				strconv.Itoa(m.MatchedFunctions), p.score(m.MatchedPercent),
			})
		}
		p.table(b, []string{"FAMILY", "NAME", "BEST SAMPLE", "VERSION", "FUNCTIONS", "SCORE"}, rows)
		p.nextPage(b, v.FamilyPage)
	}

	if v.SamplePage != nil {
		p.section(b, "Samples", v.SamplePage)
		rows := make([][]string, 0, len(v.Samples))
		for _, m := range v.Samples {
			rows = append(rows, []string{
				strconv.Itoa(m.SampleID), m.Family, m.Version, m.Filename,
				strconv.Itoa(m.MatchedFunctions), p.score(m.MatchedPercent),
			})
		}
		p.table(b, []string{"SAMPLE", "FAMILY", "VERSION", "FILENAME", "FUNCTIONS", "SCORE"}, rows)
		p.nextPage(b, v.SamplePage)
	}

	if v.FunctionPage != nil {
		p.section(b, "Functions", v.FunctionPage)
		if v.Narrowing == views.NarrowFunction {
			rows := make([][]string, 0, len(v.FunctionMatches))
			for _, m := range v.FunctionMatches {
				rows = append(rows, []string{
					strconv.Itoa(m.MatchedFunctionID), strconv.Itoa(m.MatchedSampleID), strconv.Itoa(m.MatchedFamilyID),
					strings.Join(m.MatchTypes, ","), libraryMark(m.IsLibrary), p.score(m.MatchScore),
				})
			}
			p.table(b, []string{"FUNCTION", "SAMPLE", "FAMILY", "TYPES", "LIB", "SCORE"}, rows)
		} else {
			rows := make([][]string, 0, len(v.Functions))
			for _, m := range v.Functions {
				rows = append(rows, []string{
					strconv.Itoa(m.FunctionID), fmt.Sprintf("0x%x", m.Offset), strconv.Itoa(m.NumBytes),
					strconv.Itoa(m.Families), strconv.Itoa(m.Samples), strconv.Itoa(m.Functions),
					libraryMark(m.HasLibraryMatch), p.score(m.BestScore),
				})
			}
			p.table(b, []string{"FUNCTION", "OFFSET", "BYTES", "FAMILIES", "SAMPLES", "FUNCTIONS", "LIB", "SCORE"}, rows)
		}
		p.nextPage(b, v.FunctionPage)
	}
}

func libraryMark(lib bool) string {
	if lib {
		return style.Check
	}
	return "-"
}

func (p *textPresenter) functionVs(b *strings.Builder, v *views.FunctionVsView) {
	rows := [][]string{
		functionRow(v.Function, v.PicHashes),
		functionRow(v.Other, v.OtherPicHashes),
	}
	p.section(b, "Functions", nil)
	p.table(b, []string{"FUNCTION", "NAME", "SAMPLE", "OFFSET", "BLOCKS", "INSTRUCTIONS", "PICHASH", "PICHASH MATCHES"}, rows)
}

func functionRow(f *domain.Function, summary *domain.PicHashSummary) []string {
	matches := "-"
	if summary != nil {
		matches = fmt.Sprintf("%d families, %d samples, %d functions", summary.Families, summary.Samples, summary.Functions)
	}
	return []string{
		strconv.Itoa(f.ID), f.Name, strconv.Itoa(f.SampleID), fmt.Sprintf("0x%x", f.Offset),
		strconv.Itoa(f.NumBlocks), strconv.Itoa(f.NumInstr), fmt.Sprintf("%016x", f.PicHash), matches,
	}
}

func (p *textPresenter) blocks(b *strings.Builder, v *views.BlocksView) {
	if v.FamilyID != nil {
		fmt.Fprintf(b, "  %s %d\n", p.muted.Render("family"), *v.FamilyID)
	}
	if len(v.SampleIDs) > 0 {
		fmt.Fprintf(b, "  %s %s\n", p.muted.Render("samples"), joinInts(v.SampleIDs))
	}
	if f := v.Filter; !f.IsZero() {
		fmt.Fprintf(b, "  %s score>=%s length %s-%s\n", p.muted.Render("filter"),
			boundOr(f.MinScore, "0"), boundOr(f.MinLength, "0"), boundOr(f.MaxLength, "any"))
	}
	p.section(b, "Unique blocks", &v.Page)
	for _, block := range v.Blocks {
		fmt.Fprintf(b, "  %s score %d, %d instructions\n", p.label.Render(block.Hash), block.Score, block.Length)
		for _, line := range strings.Split(block.Signature, "\n") {
			b.WriteString("    " + line + "\n")
		}
	}
	p.nextPage(b, &v.Page)
}

func boundOr(n *int, absent string) string {
	if n == nil {
		return absent
	}
	return strconv.Itoa(*n)
}

func (p *textPresenter) cross(b *strings.Builder, v *views.CrossView) {
	if v.CustomOrder != "" {
		fmt.Fprintf(b, "  %s %s\n", p.muted.Render("custom order"), v.CustomOrder)
	}
	for _, m := range v.Compare.Methods {
		p.section(b, m.Name, nil)
		ids := make([]string, len(m.Samples))
		for i, s := range m.Samples {
			ids[i] = strconv.Itoa(s.ID)
		}
		header := append([]string{"SAMPLE", "FAMILY", "VERSION"}, ids...)
		checkpoints := make(map[int]bool, len(m.Checkpoints))
		for _, id := range m.Checkpoints {
			checkpoints[id] = true
		}

		rows := make([][]string, 0, len(m.Samples))
		for _, s := range m.Samples {
			id := strconv.Itoa(s.ID)
			if checkpoints[s.ID] {
				id += "*"
			}
			row := []string{id, s.Family, s.Version}
			for _, other := range ids {
				cell := "-"
				if score, ok := m.MatchingPercent[strconv.Itoa(s.ID)][other]; ok {
					cell = p.score(score)
				}
				row = append(row, cell)
			}
			rows = append(rows, row)
		}
		p.table(b, header, rows)
	}
}

func joinInts(ids []int) string {
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = strconv.Itoa(id)
	}
	return strings.Join(parts, ",")
}

// Search implements presenter.
func (p *textPresenter) Search(r *views.SearchResults) error {
	var b strings.Builder
	b.WriteString(p.title.Render("Search") + " " + strconv.Quote(r.Query) + "\n")
	if strings.TrimSpace(r.Query) == "" {
		b.WriteString("  empty query\n")
		return p.write(&b)
	}
	if r.Families != nil {
		p.section(&b, "Families", nil)
		p.familyRows(&b, r.Families)
	}
	if r.Samples != nil {
		p.section(&b, "Samples", nil)
		p.sampleRows(&b, r.Samples)
	}
	if r.Functions != nil {
		p.section(&b, "Functions", nil)
		p.functionRows(&b, r.Functions)
	}
	return p.write(&b)
}

func (p *textPresenter) familyRows(b *strings.Builder, s *views.SearchSection[domain.Family]) {
	if p.searchFailed(b, s.Failed, s.Err) {
		return
	}
	rows := make([][]string, 0, len(s.Entries))
	for _, f := range s.Entries {
		rows = append(rows, []string{strconv.Itoa(f.ID), f.Name, strconv.Itoa(f.NumSamples), libraryMark(f.IsLibrary)})
	}
	p.table(b, []string{"FAMILY", "NAME", "SAMPLES", "LIB"}, rows)
	p.cursorHints(b, s.Paginator)
}

func (p *textPresenter) sampleRows(b *strings.Builder, s *views.SearchSection[domain.Sample]) {
	if p.searchFailed(b, s.Failed, s.Err) {
		return
	}
	rows := make([][]string, 0, len(s.Entries))
	for _, smp := range s.Entries {
		rows = append(rows, []string{
			strconv.Itoa(smp.ID), smp.Family, smp.Version, smp.Filename,
			shortHash(smp.SHA256), strconv.Itoa(smp.NumFunctions),
		})
	}
	p.table(b, []string{"SAMPLE", "FAMILY", "VERSION", "FILENAME", "SHA256", "FUNCTIONS"}, rows)
	p.cursorHints(b, s.Paginator)
}

func (p *textPresenter) functionRows(b *strings.Builder, s *views.SearchSection[domain.Function]) {
	if p.searchFailed(b, s.Failed, s.Err) {
		return
	}
	rows := make([][]string, 0, len(s.Entries))
	for _, f := range s.Entries {
		rows = append(rows, []string{
			strconv.Itoa(f.ID), f.Name, strconv.Itoa(f.SampleID), fmt.Sprintf("0x%x", f.Offset), strconv.Itoa(f.NumInstr),
		})
	}
	p.table(b, []string{"FUNCTION", "NAME", "SAMPLE", "OFFSET", "INSTRUCTIONS"}, rows)
	p.cursorHints(b, s.Paginator)
}

func (p *textPresenter) searchFailed(b *strings.Builder, failed bool, err error) bool {
	if !failed {
		return false
	}
	msg := "search failed"
	if err != nil {
		msg += ": " + err.Error()
	}
	b.WriteString("  " + p.failed.Render(style.Cross+" "+msg) + "\n")
	return true
}

func (p *textPresenter) cursorHints(b *strings.Builder, c *views.CursorPaginator) {
	if c == nil {
		return
	}
	if c.HasPrev() {
		fmt.Fprintf(b, "  %s %s\n", p.muted.Render("previous page:"), c.PrevValues().Encode())
	}
	if c.HasNext() {
		fmt.Fprintf(b, "  %s %s\n", p.muted.Render("next page:"), c.NextValues().Encode())
	}
}

// Family implements presenter.
func (p *textPresenter) Family(d *views.FamilyDetail) error {
	var b strings.Builder
	f := d.Family
	fmt.Fprintf(&b, "%s %s\n", p.title.Render("Family "+strconv.Itoa(f.ID)), f.Name)
	fmt.Fprintf(&b, "  %s %d, %s %d, %s %s\n",
		p.muted.Render("samples"), f.NumSamples,
		p.muted.Render("versions"), f.NumVersions,
		p.muted.Render("library"), libraryMark(f.IsLibrary))
	if d.Samples != nil {
		p.section(&b, "Samples", nil)
		p.sampleRows(&b, d.Samples)
	}
	return p.write(&b)
}

// Sample implements presenter.
func (p *textPresenter) Sample(d *views.SampleDetail) error {
	var b strings.Builder
	s := d.Sample
	fmt.Fprintf(&b, "%s %s\n", p.title.Render("Sample "+strconv.Itoa(s.ID)), describeSample(*s))
	fmt.Fprintf(&b, "  %s %s\n", p.muted.Render("sha256"), s.SHA256)
	fmt.Fprintf(&b, "  %s %d-bit at 0x%x, %d functions\n", p.muted.Render("binary"), s.Bitness, s.BaseAddr, s.NumFunctions)
	if s.IsQuery() {
		b.WriteString("  query sample\n")
		return p.write(&b)
	}
	if d.Functions != nil {
		p.section(&b, "Functions", nil)
		p.functionRows(&b, d.Functions)
	}
	p.section(&b, "Jobs", nil)
	p.jobRows(&b, d.Jobs)
	return p.write(&b)
}

// Function implements presenter.
func (p *textPresenter) Function(d *views.FunctionDetail) error {
	var b strings.Builder
	f := d.Function
	fmt.Fprintf(&b, "%s %s\n", p.title.Render("Function "+strconv.Itoa(f.ID)), f.Name)
	fmt.Fprintf(&b, "  %s sample %d, family %d, offset 0x%x\n", p.muted.Render("location"), f.SampleID, f.FamilyID, f.Offset)
	fmt.Fprintf(&b, "  %s %d blocks, %d instructions\n", p.muted.Render("size"), f.NumBlocks, f.NumInstr)
	fmt.Fprintf(&b, "  %s %016x\n", p.muted.Render("pichash"), f.PicHash)
	p.summary(&b, d.PicHashes)

	if len(f.PicBlockHashes) > 0 {
		p.section(&b, "Blocks", nil)
		rows := make([][]string, 0, len(f.PicBlockHashes))
		for _, h := range f.PicBlockHashes {
			rows = append(rows, []string{fmt.Sprintf("0x%x", h.Offset), fmt.Sprintf("%016x", h.Hash), strconv.Itoa(h.Size)})
		}
		p.table(&b, []string{"OFFSET", "PICBLOCKHASH", "SIZE"}, rows)
	}
	return p.write(&b)
}

func (p *textPresenter) summary(b *strings.Builder, s *domain.PicHashSummary) {
	if s == nil {
		fmt.Fprintf(b, "  %s none\n", p.muted.Render("matches"))
		return
	}
	fmt.Fprintf(b, "  %s %d families, %d samples, %d functions\n", p.muted.Render("matches"), s.Families, s.Samples, s.Functions)
}

// PicHashSummary implements presenter.
func (p *textPresenter) PicHashSummary(hash uint64, s *domain.PicHashSummary) error {
	var b strings.Builder
	b.WriteString(p.title.Render(fmt.Sprintf("PicBlockHash %016x", hash)) + "\n")
	p.summary(&b, s)
	return p.write(&b)
}

// Job implements presenter.
func (p *textPresenter) Job(o *views.JobOverview) error {
	var b strings.Builder
	p.heading(&b, o.Job)
	fmt.Fprintf(&b, "  %s %s\n", p.muted.Render("parameters"), o.Job.Parameters)
	if o.Job.ResultID != "" {
		fmt.Fprintf(&b, "  %s %s\n", p.muted.Render("result"), o.Job.ResultID)
	}
	if len(o.Children) > 0 {
		p.section(&b, "Dependencies", nil)
		p.jobRows(&b, o.Children)
	}
	return p.write(&b)
}

func (p *textPresenter) jobRows(b *strings.Builder, jobs []domain.JobInfo) {
	rows := make([][]string, 0, len(jobs))
	for i := range jobs {
		j := &jobs[i]
		rows = append(rows, []string{strconv.Itoa(j.Number), j.ID, j.Status(), j.Parameters})
	}
	p.table(b, []string{"#", "JOB", "STATUS", "PARAMETERS"}, rows)
}

// Jobs implements presenter.
func (p *textPresenter) Jobs(l *views.JobListing) error {
	var b strings.Builder
	b.WriteString(p.title.Render("Jobs"))
	if l.Query != "" {
		b.WriteString(" " + strconv.Quote(l.Query))
	}
	b.WriteString("\n")
	for _, s := range l.Sections() {
		if s == nil {
			continue
		}
		p.section(&b, s.Name, &s.Page)
		p.jobRows(&b, s.Jobs)
		p.nextPage(&b, &s.Page)
	}
	return p.write(&b)
}

// Export implements presenter.
func (p *textPresenter) Export(path string, size int) error {
	var b strings.Builder
	fmt.Fprintf(&b, "%s wrote %d bytes to %s\n", p.good.Render(style.Check), size, path)
	return p.write(&b)
}

// Cache implements presenter.
func (p *textPresenter) Cache(entries []domain.CacheEntry, pruned bool) error {
	var b strings.Builder
	title := "Cache"
	if pruned {
		title = "Pruned"
	}
	var total int64
	for _, e := range entries {
		total += e.Size
	}
	fmt.Fprintf(&b, "%s %d entries, %d bytes\n", p.title.Render(title), len(entries), total)

	sorted := make([]domain.CacheEntry, len(entries))
	copy(sorted, entries)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].JobID != sorted[j].JobID {
			return sorted[i].JobID < sorted[j].JobID
		}
		return sorted[i].WrittenAt.Before(sorted[j].WrittenAt)
	})
	rows := make([][]string, 0, len(sorted))
	for _, e := range sorted {
		rows = append(rows, []string{e.JobID, e.WrittenAt.UTC().Format("2006-01-02 15:04:05"), strconv.FormatInt(e.Size, 10)})
	}
	p.table(&b, []string{"JOB", "WRITTEN", "BYTES"}, rows)
	return p.write(&b)
}
