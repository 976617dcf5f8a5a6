// ABOUTME: PDF export for protocols using the shared display row sequence
// ABOUTME: Renders title block, participants, points table and trailing sections
package pdf

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/go-pdf/fpdf"

	"github.com/oscarlimaalphafox/KADRA/models"
	"github.com/oscarlimaalphafox/KADRA/render"
)

const (
	marginLeft   = 20.0
	marginRight  = 20.0
	marginTop    = 28.0
	marginBottom = 22.0
	pageWidth    = 210.0
	contentWidth = pageWidth - marginLeft - marginRight

	fontFamily = "Helvetica"
	lineHeight = 3.5
)

type rgb struct{ r, g, b int }

var (
	blue          = rgb{0, 51, 128}
	blueLight     = rgb{230, 238, 248}
	blueAmendment = rgb{15, 49, 136}
	redOverdue    = rgb{255, 51, 0}
	grayDone      = rgb{170, 170, 170}
	grayMid       = rgb{200, 200, 200}
	black         = rgb{0, 0, 0}
)

// Point table column widths; the content column takes the remainder.
var pointCols = [6]float64{16, contentWidth - 16 - 20 - 15 - 18 - 14, 20, 15, 18, 14}

var pointHead = [6]string{"ID", "Inhalt", "Kategorie", "Zuständig", "Termin", "Erledigt"}

const disclaimer = "Der in obenstehendem Text beschriebene Besprechungsinhalt gibt das Verständnis des Verfassers wieder. " +
	"Die Empfänger des Protokolls werden gebeten eventuell gewünschte Ergänzungen und/oder Korrekturen " +
	"möglichst innerhalb von drei Tagen nach Zustellung beim Verfasser schriftlich anzumelden. " +
	"Diese werden dann in der nächsten Besprechung dokumentiert. Ohne Einwände wird von einer ordnungsgemäßen " +
	"Besprechungswiedergabe ausgegangen. Das Protokoll wird regelmäßig durch Entfall älterer und " +
	"nur dokumentierender Einträge bewusst gekürzt."

type docWriter struct {
	doc      *fpdf.Fpdf
	tr       func(string) string
	protocol *models.Protocol
	project  *models.Project
	today    time.Time
	y        float64
	pageH    float64
}

// Render writes the protocol as an A4 PDF. Hidden chapters are left out the
// same way the screen leaves them out; rows come from the shared builder so
// both outputs always agree.
func Render(w io.Writer, project *models.Project, protocol *models.Protocol, hidden map[string]bool, today time.Time) error {
	doc := fpdf.New("P", "mm", "A4", "")
	doc.SetMargins(marginLeft, marginTop, marginRight)
	doc.SetAutoPageBreak(false, marginBottom)
	doc.AliasNbPages("")

	d := &docWriter{
		doc:      doc,
		tr:       doc.UnicodeTranslatorFromDescriptor(""),
		protocol: protocol,
		project:  project,
		today:    today,
	}
	_, d.pageH = doc.GetPageSize()

	doc.SetFooterFunc(func() {
		doc.SetFont(fontFamily, "", 8)
		doc.SetTextColor(100, 100, 100)
		doc.Text(marginLeft, d.pageH-10, d.tr(fmt.Sprintf("Seite %d von {nb}", doc.PageNo())))
	})

	doc.AddPage()
	d.y = marginTop + 4

	vs := render.NewViewState()
	for key := range hidden {
		vs.HiddenChapters[key] = true
	}
	rows := render.BuildRows(protocol, vs, today)

	d.titleBlock()
	d.participantsTable()
	d.pointsTable(rows)
	d.attachments()
	d.author()
	d.formatConventions()
	d.idSyntax()
	d.disclaimer()
	d.abbreviations()

	return doc.Output(w)
}

// Filename names an export: "260315 NB_Jour Fixe Ausbau Nr.04.pdf". Memos
// carry no number.
func Filename(code string, protocol *models.Protocol, now time.Time) string {
	name := protocol.SeriesName
	if name == "" {
		name = protocol.Title
	}
	if name == "" {
		name = protocol.Type
	}
	numStr := ""
	if !protocol.IsMemo() {
		number := protocol.Number
		if number < 1 {
			number = 1
		}
		numStr = fmt.Sprintf(" Nr.%02d", number)
	}
	return fmt.Sprintf("%s %s_%s%s.pdf", now.Format("060102"), code, name, numStr)
}

func (d *docWriter) setColor(c rgb)     { d.doc.SetTextColor(c.r, c.g, c.b) }
func (d *docWriter) setFill(c rgb)      { d.doc.SetFillColor(c.r, c.g, c.b) }
func (d *docWriter) setDraw(c rgb)      { d.doc.SetDrawColor(c.r, c.g, c.b) }
func (d *docWriter) text(x float64, s string) { d.doc.Text(x, d.y, d.tr(s)) }

// ensureSpace starts a new page when fewer than need millimeters remain.
func (d *docWriter) ensureSpace(need float64) {
	if d.y+need > d.pageH-marginBottom {
		d.doc.AddPage()
		d.y = marginTop + 4
	}
}

// wrapText splits on explicit newlines first, then on width.
func wrapText(doc *fpdf.Fpdf, text string, width float64) []string {
	var out []string
	for _, line := range strings.Split(text, "\n") {
		if line == "" {
			out = append(out, "")
			continue
		}
		out = append(out, doc.SplitText(line, width)...)
	}
	return out
}

// hangingIndent keeps bullet continuation lines aligned behind "- ".
func (d *docWriter) hangingIndent(text string, width float64) []string {
	var out []string
	for _, line := range strings.Split(text, "\n") {
		trimmed := strings.TrimLeft(line, " ")
		if !strings.HasPrefix(trimmed, "- ") {
			out = append(out, wrapText(d.doc, line, width)...)
			continue
		}
		prefix := line[:len(line)-len(trimmed)] + "- "
		rest := strings.TrimPrefix(trimmed, "- ")
		prefixW := d.doc.GetStringWidth(d.tr(prefix))
		avail := width - prefixW
		if avail < 10 {
			avail = width
		}
		pad := strings.Repeat(" ", padChars(d.doc, prefixW))
		for i, w := range wrapText(d.doc, rest, avail) {
			if i == 0 {
				out = append(out, prefix+w)
			} else {
				out = append(out, pad+w)
			}
		}
	}
	return out
}

func padChars(doc *fpdf.Fpdf, width float64) int {
	spaceW := doc.GetStringWidth(" ")
	if spaceW <= 0 {
		return 0
	}
	n := int(width/spaceW) + 1
	return n
}

func (d *docWriter) checkbox(x, y, size float64, checked bool) {
	top := y - size + 1
	d.doc.SetDrawColor(160, 160, 160)
	d.doc.SetLineWidth(0.15)
	d.doc.RoundedRect(x, top, size, size, 0.4, "1234", "D")
	if !checked {
		return
	}
	d.setDraw(black)
	d.doc.SetLineWidth(0.25)
	m := 0.15 * size
	d.doc.Line(x+m, top+size*0.55, x+size*0.38, top+size-m)
	d.doc.Line(x+size*0.38, top+size-m, x+size-m, top+m)
}

func (d *docWriter) titleBlock() {
	p := d.protocol
	boxH := 12.0

	typeName := p.SeriesName
	if typeName == "" {
		typeName = p.Title
	}
	if typeName == "" {
		typeName = p.Type
	}
	numStr := ""
	if !p.IsMemo() {
		number := p.Number
		if number < 1 {
			number = 1
		}
		numStr = fmt.Sprintf("Nr. %02d", number)
	}

	d.doc.SetFont(fontFamily, "B", 14)
	codeBoxW := d.doc.GetStringWidth(d.tr(d.project.Code)) + 10
	if codeBoxW < 28 {
		codeBoxW = 28
	}

	d.setFill(black)
	d.doc.Rect(marginLeft, d.y-4, codeBoxW, boxH, "F")
	d.setFill(grayMid)
	d.doc.Rect(marginLeft+codeBoxW, d.y-4, contentWidth-codeBoxW, boxH, "F")

	d.doc.SetTextColor(255, 255, 255)
	d.text(marginLeft+5, d.project.Code)

	d.doc.SetFont(fontFamily, "B", 12)
	d.setColor(black)
	grayW := contentWidth - codeBoxW
	titleW := d.doc.GetStringWidth(d.tr(typeName))
	d.text(marginLeft+codeBoxW+grayW/2-titleW/2, typeName)

	if numStr != "" {
		d.doc.SetFont(fontFamily, "B", 14)
		numW := d.doc.GetStringWidth(d.tr(numStr))
		d.text(marginLeft+contentWidth-numW-4, numStr)
	}

	d.y += 16

	d.doc.SetFontSize(9)
	meta := [][2]string{
		{"Projekt:", d.project.Name},
		{"Termin:", joinDateTime(p.Date, p.Time)},
		{"Ort:", p.Location},
	}
	if p.Tenant != "" {
		meta = append(meta, [2]string{"Mieterin:", p.Tenant})
	}
	if p.Landlord != "" {
		meta = append(meta, [2]string{"Vermieterin:", p.Landlord})
	}
	for _, row := range meta {
		d.doc.SetFont(fontFamily, "", 9)
		d.text(marginLeft, row[0])
		d.doc.SetFont(fontFamily, "B", 9)
		d.text(marginLeft+28, row[1])
		d.y += 5
	}
	d.y += 3
}

func joinDateTime(date, timeOfDay string) string {
	out := formatDate(date)
	if timeOfDay != "" {
		out += "    " + timeOfDay
	}
	return out
}

// formatDate turns an ISO date into the German dotted form.
func formatDate(iso string) string {
	parts := strings.Split(iso, "-")
	if len(parts) != 3 {
		return iso
	}
	return parts[2] + "." + parts[1] + "." + parts[0]
}

var participantCols = [6]float64{32, 40, 14, 48, 18, 18}

func (d *docWriter) participantsTable() {
	participants := d.protocol.Participants
	if len(participants) == 0 {
		return
	}

	head := [6]string{"Name", "Firma / Organisation", "Kürzel", "E-Mail-Adresse", "Teilnehmer", "Verteiler"}
	d.doc.SetFont(fontFamily, "B", 7)
	d.setColor(black)
	x := marginLeft
	for i, label := range head {
		d.text(x+2, label)
		x += participantCols[i]
	}
	d.y += 5

	d.doc.SetFont(fontFamily, "", 8)
	for idx, part := range participants {
		d.ensureSpace(6)
		cells := [4]string{part.Name, part.Company, part.Abbr, part.Email}
		x = marginLeft
		for i, cell := range cells {
			d.text(x+2, cell)
			x += participantCols[i]
		}
		bx := x + participantCols[4]/2 - 1.25
		d.checkbox(bx, d.y+0.5, 2.5, part.Attended)
		x += participantCols[4]
		bx = x + participantCols[5]/2 - 1.25
		d.checkbox(bx, d.y+0.5, 2.5, part.InDistrib)

		if idx < len(participants)-1 {
			d.doc.SetDrawColor(180, 180, 180)
			d.doc.SetLineWidth(0.2)
			d.doc.Line(marginLeft, d.y+1.5, pageWidth-marginRight, d.y+1.5)
		}
		d.y += 6
	}
	d.y += 6
}

func (d *docWriter) pointsTableHeader() {
	d.doc.SetFont(fontFamily, "B", 7)
	d.doc.SetFillColor(245, 245, 245)
	d.doc.SetDrawColor(210, 210, 210)
	d.doc.SetLineWidth(0.2)
	d.setColor(black)
	x := marginLeft
	for i, label := range pointHead {
		d.doc.Rect(x, d.y-4, pointCols[i], 6, "FD")
		d.text(x+2, label)
		x += pointCols[i]
	}
	d.y += 4
}

// ensureTableSpace breaks the page and repeats the table header.
func (d *docWriter) ensureTableSpace(need float64) {
	if d.y+need > d.pageH-marginBottom-5 {
		d.doc.AddPage()
		d.y = marginTop + 6
		d.pointsTableHeader()
	}
}

func (d *docWriter) pointsTable(rows []render.Row) {
	if len(rows) == 0 {
		return
	}
	d.y += 4
	d.pointsTableHeader()

	for _, row := range rows {
		switch row.Kind {
		case render.RowChapter:
			d.ensureTableSpace(7)
			d.setFill(blue)
			d.doc.Rect(marginLeft, d.y, contentWidth, 7, "F")
			d.doc.SetFont(fontFamily, "B", 9)
			d.doc.SetTextColor(255, 255, 255)
			d.y += 4.8
			d.text(marginLeft+2, row.Chapter.Key+" - "+row.Chapter.Label)
			d.y += 2.2

		case render.RowSubchapter:
			d.ensureTableSpace(6)
			d.setFill(blueLight)
			d.doc.Rect(marginLeft, d.y, contentWidth, 6, "F")
			d.doc.SetFont(fontFamily, "B", 8.5)
			d.setColor(black)
			d.y += 4.3
			d.text(marginLeft+2, row.Subchapter.ID+" - "+row.Subchapter.Label)
			d.y += 1.7

		case render.RowTopic:
			d.ensureTableSpace(6)
			d.doc.SetFillColor(250, 250, 250)
			d.doc.Rect(marginLeft, d.y, contentWidth, 6, "F")
			d.doc.SetFont(fontFamily, "I", 8)
			d.setColor(black)
			d.y += 4.3
			d.text(marginLeft+18, row.Topic.Label)
			d.y += 1.7

		case render.RowPoint:
			d.pointRow(row.Point)
		}
	}
	d.y += 6
}

func (d *docWriter) pointRow(pr *render.PointRow) {
	pt := pr.Point

	baseColor := black
	if pr.Done {
		baseColor = grayDone
	}
	contentColor := baseColor
	if !pr.Done && pr.ContentAmended {
		contentColor = blueAmendment
	}
	deadlineColor := baseColor
	if !pr.Done {
		if pr.Overdue {
			deadlineColor = redOverdue
		} else if pr.DeadlineAmended {
			deadlineColor = blueAmendment
		}
	}
	baseStyle := ""
	if pr.IsNew {
		baseStyle = "B"
	}
	deadlineStyle := baseStyle
	if pr.Overdue {
		deadlineStyle = "B"
	}

	category := pt.NormalizedCategory()
	if category == "" {
		category = models.CategoryTask
	}

	contentW := pointCols[1] - 4
	d.doc.SetFont(fontFamily, baseStyle, 8)
	lines := d.hangingIndent(pt.Content, contentW)
	rowH := float64(len(lines))*lineHeight + 4
	if rowH < 8 {
		rowH = 8
	}
	d.ensureTableSpace(rowH)

	d.doc.SetDrawColor(210, 210, 210)
	d.doc.SetLineWidth(0.2)
	x := marginLeft
	for _, w := range pointCols {
		d.doc.Rect(x, d.y, w, rowH, "D")
		x += w
	}

	top := d.y
	baseline := top + 4.5

	d.setColor(baseColor)
	d.doc.SetFont(fontFamily, baseStyle, 6)
	d.doc.Text(marginLeft+2, baseline, d.tr(pt.ID))

	d.setColor(contentColor)
	d.doc.SetFont(fontFamily, baseStyle, 8)
	for i, line := range lines {
		d.doc.Text(marginLeft+pointCols[0]+2, baseline+float64(i)*lineHeight, d.tr(line))
	}

	d.setColor(baseColor)
	d.doc.SetFont(fontFamily, baseStyle, 6.5)
	catX := marginLeft + pointCols[0] + pointCols[1]
	d.doc.Text(catX+2, baseline, d.tr(category))
	d.doc.Text(catX+pointCols[2]+2, baseline, d.tr(pt.Responsible))

	d.setColor(deadlineColor)
	d.doc.SetFont(fontFamily, deadlineStyle, 6.5)
	d.doc.Text(catX+pointCols[2]+pointCols[3]+2, baseline, d.tr(pt.Deadline))

	doneX := catX + pointCols[2] + pointCols[3] + pointCols[4]
	d.checkbox(doneX+pointCols[5]/2-1.5, top+4.5, 3, pr.Done)

	d.y += rowH
}

func (d *docWriter) attachments() {
	d.ensureSpace(30)

	d.setFill(grayMid)
	d.doc.Rect(marginLeft, d.y-1, contentWidth, 7, "F")
	d.doc.SetFont(fontFamily, "B", 9)
	d.setColor(black)
	d.y += 4
	d.text(marginLeft+3, "ANLAGEN")
	d.y += 6

	if len(d.protocol.Attachments) == 0 {
		d.doc.SetFont(fontFamily, "I", 8)
		d.setColor(grayDone)
		d.text(marginLeft+3, "keine Anlagen")
		d.y += 8
		return
	}

	d.doc.SetFont(fontFamily, "", 8)
	for _, att := range d.protocol.Attachments {
		d.ensureSpace(10)
		d.doc.SetFillColor(245, 245, 245)
		d.doc.Rect(marginLeft, d.y-3.5, contentWidth, 5.5, "F")
		d.setColor(black)
		d.text(marginLeft+10, att.ID+"    "+att.Caption)
		d.y += 6
	}
	d.y += 4
}

func (d *docWriter) author() {
	d.ensureSpace(15)
	d.doc.SetFont(fontFamily, "", 9)
	d.setColor(black)

	a := d.protocol.Author
	var parts []string
	name := strings.TrimSpace(a.FirstName + " " + a.LastName)
	for _, part := range []string{name, a.Company, a.Date} {
		if part != "" {
			parts = append(parts, part)
		}
	}
	d.text(marginLeft, "Aufgestellt: "+strings.Join(parts, ", "))
	d.y += 8
}

func (d *docWriter) separator() {
	d.setDraw(grayMid)
	d.doc.SetLineWidth(0.3)
	d.doc.Line(marginLeft, d.y, marginLeft+contentWidth, d.y)
	d.y += 6
}

func (d *docWriter) sectionHeading(title string, minSpace float64) {
	d.ensureSpace(minSpace)
	d.doc.SetFont(fontFamily, "B", 9)
	d.setColor(black)
	d.text(marginLeft, title)
	d.y += 6
}

func (d *docWriter) formatConventions() {
	d.separator()
	d.sectionHeading("FORMATIERUNGSKONVENTIONEN", 40)

	d.doc.SetFont(fontFamily, "B", 8)
	d.setColor(black)
	d.text(marginLeft, "Neue Punkte sind fett markiert")
	d.y += 4.5

	d.doc.SetFont(fontFamily, "", 8)
	d.setColor(blueAmendment)
	d.text(marginLeft, "Ergänzungen/Korrekturen sind farbig hervorgehoben (blau)")
	d.y += 4.5

	d.setColor(redOverdue)
	d.text(marginLeft, "Überfällige Fristen sind rot markiert")
	d.y += 4.5

	d.setColor(grayDone)
	d.text(marginLeft, "Erledigte Punkte sind in hellgrauer Schrift markiert und werden mit dem nächsten Protokoll gelöscht")
	d.y += 10
}

func (d *docWriter) idSyntax() {
	d.sectionHeading("ID-SYNTAX", 25)

	d.doc.SetFont(fontFamily, "", 8)
	d.setColor(black)
	d.text(marginLeft, "Syntax der Protokollpunkte:")
	d.doc.SetFont(fontFamily, "B", 8)
	d.text(marginLeft+48, "#[Protokoll-Nr]|[Kapitel].[Unterkapitel].[lfd. Nr.]")
	d.y += 5

	d.doc.SetFont(fontFamily, "", 8)
	d.text(marginLeft, "Beispiel:")
	d.doc.SetFont(fontFamily, "B", 8)
	d.text(marginLeft+48, "#11|B.1.02")
	d.doc.SetFont(fontFamily, "", 8)
	d.text(marginLeft+62, "= Punkt aus Protokoll Nr. 11, Kapitel B, Unterkapitel 1, laufende Nr. 02")
	d.y += 10
}

func (d *docWriter) disclaimer() {
	d.separator()
	d.sectionHeading("HINWEIS", 30)

	d.doc.SetFont(fontFamily, "", 8)
	d.setColor(black)
	lines := wrapText(d.doc, disclaimer, contentWidth)
	for _, line := range lines {
		d.text(marginLeft, line)
		d.y += lineHeight
	}
	d.y += 8
}

// abbreviations lists participant abbreviations first, then the custom ones.
func (d *docWriter) abbreviations() {
	var entries []models.Abbreviation
	seen := map[string]bool{}
	for _, part := range d.protocol.Participants {
		if part.Abbr != "" && !seen[part.Abbr] {
			seen[part.Abbr] = true
			entries = append(entries, models.Abbreviation{Abbr: part.Abbr, Name: part.Company})
		}
	}
	for _, ca := range d.protocol.CustomAbbreviations {
		if ca.Abbr != "" {
			entries = append(entries, ca)
		}
	}
	if len(entries) == 0 {
		return
	}

	d.separator()
	d.sectionHeading("ABKÜRZUNGSVERZEICHNIS", 20)

	d.doc.SetFont(fontFamily, "", 8)
	d.setColor(black)
	for _, entry := range entries {
		d.ensureSpace(8)
		d.text(marginLeft, entry.Abbr+" = "+entry.Name)
		d.y += 4
	}
	d.y += 4
}
