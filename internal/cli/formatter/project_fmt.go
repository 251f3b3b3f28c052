package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/gantry/internal/domain"
	"github.com/alexanderramin/gantry/internal/service"
	"github.com/charmbracelet/lipgloss"
)

// ProjectInspectData holds all data needed to render a project inspect view.
type ProjectInspectData struct {
	Project *domain.Project
	Tasks   []*domain.Task
	Lanes   map[string]int // taskID -> 0-based lane; optional
}

// FormatProjectList renders a styled project list inside a bordered box.
func FormatProjectList(projects []*domain.Project) string {
	if len(projects) == 0 {
		return RenderBox("Projects", Dim("No projects yet."))
	}

	headers := []string{"ID", "NAME", "STATUS", "DATES", "LOCATION"}
	rows := make([][]string, 0, len(projects))

	for _, p := range projects {
		id := p.DisplayID()
		if strings.TrimSpace(id) == "" {
			id = "--"
		}

		location := Dim("--")
		if p.Location != "" {
			location = StyleFg.Render(p.Location)
		}

		rows = append(rows, []string{
			id,
			Bold(p.Name),
			StatusPill(p.Status),
			DateRange(p.StartDate, p.EndDate),
			location,
		})
	}

	table := RenderTable(headers, rows)
	return RenderBox("Projects", table)
}

// FormatProjectInspect renders a styled project inspect card with side-by-side layout.
func FormatProjectInspect(data ProjectInspectData) string {
	leftPanel := buildMetadataPanel(data.Project)
	rightPanel := buildTaskPanel(data.Tasks, data.Lanes)

	spacing := "    "
	combined := lipgloss.JoinHorizontal(lipgloss.Top, leftPanel, spacing, rightPanel)

	return RenderBox("", combined)
}

func buildMetadataPanel(p *domain.Project) string {
	var b strings.Builder

	b.WriteString(StyleBold.Render(p.Name) + "\n")
	if p.Location != "" {
		b.WriteString(StylePurple.Render(p.Location) + "\n")
	}
	b.WriteString("\n")

	b.WriteString(fmt.Sprintf("%s  %s\n", StyleDim.Render("STATUS "), StatusPill(p.Status)))
	b.WriteString(fmt.Sprintf("%s  %s\n", StyleDim.Render("ID     "), Dim(p.ShortID)))
	b.WriteString(fmt.Sprintf("%s  %s\n", StyleDim.Render("UUID   "), TruncID(p.ID)))
	b.WriteString(fmt.Sprintf("%s  %s\n", StyleDim.Render("START  "), StyleFg.Render(shortDate(p.StartDate))))
	end := StyleFg.Render(shortDate(p.EndDate))
	if !p.Status.Terminal() && !p.EndDate.IsZero() {
		end += "  " + RelativeDateStyled(p.EndDate)
	}
	b.WriteString(fmt.Sprintf("%s  %s\n", StyleDim.Render("END    "), end))
	if p.Budget > 0 {
		b.WriteString(fmt.Sprintf("%s  %s\n", StyleDim.Render("BUDGET "), StyleFg.Render(fmt.Sprintf("%.2f", p.Budget))))
	}
	b.WriteString(fmt.Sprintf("%s  %s\n", StyleDim.Render("UPDATED"), HumanTimestamp(p.UpdatedAt)))

	return lipgloss.NewStyle().Width(45).Render(b.String())
}

func buildTaskPanel(tasks []*domain.Task, lanes map[string]int) string {
	if len(tasks) == 0 {
		return StyleDim.Render("No tasks")
	}

	var b strings.Builder

	b.WriteString(Header("Tasks") + "\n")
	b.WriteString(RenderProgress(OverallProgress(tasks), 12) + "\n")

	items := make([]TreeItem, 0, len(tasks))
	for i, t := range tasks {
		lane := 0
		if l, ok := lanes[t.ID]; ok {
			lane = l + 1
		}
		items = append(items, TreeItem{
			Title:    t.Name,
			Lane:     lane,
			Level:    1,
			IsLast:   i == len(tasks)-1,
			Status:   t.Status,
			Critical: t.CriticalPath,
			Detail:   fmt.Sprintf("%s → %s  %s", t.StartDate.Format("Jan 2"), t.EndDate.Format("Jan 2"), PercentLabel(t.Progress)),
		})
	}
	b.WriteString(RenderTree(items))

	return b.String()
}

// OverallProgress averages task progress, ignoring cancelled tasks.
// It returns a fraction in [0,1].
func OverallProgress(tasks []*domain.Task) float64 {
	total, n := 0, 0
	for _, t := range tasks {
		if t.Status == domain.StatusCancelled {
			continue
		}
		total += t.Progress
		n++
	}
	if n == 0 {
		return 0
	}
	return float64(total) / float64(n) / 100
}

// FormatTaskList renders a project's tasks as a table.
func FormatTaskList(project *domain.Project, tasks []*domain.Task) string {
	title := "Tasks · " + project.DisplayID()
	if len(tasks) == 0 {
		return RenderBox(title, Dim("No tasks yet."))
	}

	headers := []string{"#", "NAME", "STATUS", "DATES", "PROGRESS", "ASSIGNEE"}
	rows := make([][]string, 0, len(tasks))
	for i, t := range tasks {
		assignee := Dim("--")
		if t.Assignee != "" {
			assignee = t.Assignee
		}
		dim := t.Status.Terminal()
		rows = append(rows, []string{
			Dim(fmt.Sprintf("%d", i+1)),
			t.Name,
			TaskPill(t.Status, t.CriticalPath),
			DateRange(t.StartDate, t.EndDate),
			RenderCompactBar(float64(t.Progress)/100, 10, dim) + " " + PercentLabel(t.Progress),
			assignee,
		})
	}
	align := []lipgloss.Position{lipgloss.Right}
	return RenderBox(title, RenderAlignedTable(headers, align, rows))
}

// FormatImportResult summarizes a successful import.
func FormatImportResult(res *service.ImportResult) string {
	var b strings.Builder
	p := res.Project
	b.WriteString(fmt.Sprintf("%s %s %s\n", StyleGreen.Render("✔ Imported"), Bold(p.Name), Dim("("+p.DisplayID()+")")))
	b.WriteString(fmt.Sprintf("  %s  %s\n", StyleDim.Render("DATES"), DateRange(p.StartDate, p.EndDate)))
	b.WriteString(fmt.Sprintf("  %s  %d\n", StyleDim.Render("TASKS"), res.TaskCount))
	for _, w := range res.Warnings {
		b.WriteString(StyleYellow.Render("  ! "+w) + "\n")
	}
	return b.String()
}
