package cli

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/findyourpeers/peers/internal/app/models/dto"
	"github.com/findyourpeers/peers/internal/client"
	"github.com/olekukonko/tablewriter"
)

var (
	successColor  = color.New(color.FgHiGreen, color.Bold)
	errorColor    = color.New(color.FgHiRed, color.Bold)
	labelColor    = color.New(color.FgHiCyan)
	categoryColor = map[string]*color.Color{
		"study": color.New(color.FgHiBlue),
		"club":  color.New(color.FgHiMagenta),
		"event": color.New(color.FgHiYellow),
	}
)

const timeLayout = "Jan 2, 2006 15:04"

func outputError(w io.Writer, err error) {
	msg := err.Error()
	var apiErr *client.APIError
	if errors.As(err, &apiErr) {
		msg = apiErr.Message
	}
	fmt.Fprintln(w, errorColor.Sprint("Error: "+msg))
}

func outputSuccess(w io.Writer, format string, args ...interface{}) {
	fmt.Fprintln(w, successColor.Sprintf(format, args...))
}

func formatCategory(c string) string {
	if col, ok := categoryColor[c]; ok {
		return col.Sprint(c)
	}
	return c
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Local().Format(timeLayout)
}

func newTable(w io.Writer, header ...string) *tablewriter.Table {
	table := tablewriter.NewWriter(w)
	table.SetAutoWrapText(false)
	table.SetHeader(header)
	return table
}

func renderGroups(w io.Writer, groups []dto.GroupResponse) {
	if len(groups) == 0 {
		fmt.Fprintln(w, "No groups.")
		return
	}
	table := newTable(w, "ID", "Name", "Topic", "Category", "College", "Created by", "Created")
	for _, g := range groups {
		table.Append([]string{
			g.ID.String(),
			g.GroupName,
			g.Topic,
			formatCategory(g.Category),
			g.CollegeName,
			g.CreatedBy,
			formatTime(g.DateCreated),
		})
	}
	table.Render()
}

func renderGroup(w io.Writer, g *dto.GroupResponse, favorited bool) {
	star := "no"
	if favorited {
		star = successColor.Sprint("yes")
	}
	rows := [][2]string{
		{"Name", g.GroupName},
		{"Topic", g.Topic},
		{"Category", formatCategory(g.Category)},
		{"College", g.CollegeName},
		{"Created by", g.CreatedBy},
		{"Created", formatTime(g.DateCreated)},
		{"Photo", g.GroupPhotoURL},
		{"Following", star},
	}
	for _, r := range rows {
		renderField(w, r[0], r[1])
	}
	if strings.TrimSpace(g.Description) != "" {
		fmt.Fprintf(w, "\n%s\n", g.Description)
	}
}

func renderPosts(w io.Writer, posts []dto.PostResponse) {
	if len(posts) == 0 {
		fmt.Fprintln(w, "No posts yet.")
		return
	}
	for _, p := range posts {
		renderPost(w, p)
	}
}

func renderPost(w io.Writer, p dto.PostResponse) {
	fmt.Fprintf(w, "%s %s\n  %s\n", labelColor.Sprint(p.UserName), formatTime(p.TimePosted), p.PostText)
}

func renderField(w io.Writer, label, value string) {
	fmt.Fprintf(w, "%s %s\n", labelColor.Sprintf("%-11s", label+":"), value)
}
