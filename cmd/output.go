package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/compozy/prscope/internal/domain"
)

const (
	outputTable = "table"
	outputJSON  = "json"
)

type refView struct {
	Ref        string `json:"ref"`
	Repository string `json:"repository,omitempty"`
}

type pullRequestView struct {
	Number    int       `json:"number"`
	Title     string    `json:"title"`
	State     string    `json:"state"`
	URL       string    `json:"url"`
	Author    string    `json:"author,omitempty"`
	Assignee  string    `json:"assignee,omitempty"`
	Head      refView   `json:"head"`
	Base      refView   `json:"base"`
	Comments  int       `json:"comments"`
	Commits   int       `json:"commits"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type pageView struct {
	Remote       string            `json:"remote"`
	Category     string            `json:"category"`
	PullRequests []pullRequestView `json:"pull_requests"`
	HasMorePages bool              `json:"has_more_pages"`
}

func newRefView(ref *domain.RawRef) refView {
	if ref == nil {
		return refView{}
	}
	view := refView{Ref: ref.Ref}
	if ref.Repository != nil {
		view.Repository = ref.Repository.FullName
	}
	return view
}

func login(account *domain.Account) string {
	if account == nil {
		return ""
	}
	return account.Login
}

func newPullRequestView(pr *domain.PullRequest) pullRequestView {
	return pullRequestView{
		Number:    pr.Number(),
		Title:     pr.Title(),
		State:     pr.State().String(),
		URL:       pr.URL(),
		Author:    login(pr.Author()),
		Assignee:  login(pr.Assignee()),
		Head:      newRefView(pr.Head()),
		Base:      newRefView(pr.Base()),
		Comments:  pr.CommentCount(),
		Commits:   pr.CommitCount(),
		CreatedAt: pr.CreatedAt(),
		UpdatedAt: pr.UpdatedAt(),
	}
}

func validateOutput(format string) error {
	if format != outputTable && format != outputJSON {
		return fmt.Errorf("unsupported output %q: use %s or %s", format, outputTable, outputJSON)
	}
	return nil
}

func writePullRequests(out io.Writer, format string, page pageView) error {
	if format == outputJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(page)
	}
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NUMBER\tSTATE\tAUTHOR\tHEAD\tTITLE")
	for _, pr := range page.PullRequests {
		fmt.Fprintf(w, "#%d\t%s\t%s\t%s\t%s\n", pr.Number, pr.State, pr.Author, pr.Head.Ref, pr.Title)
	}
	if err := w.Flush(); err != nil {
		return err
	}
	if page.HasMorePages {
		fmt.Fprintln(out, "(more pages available)")
	}
	return nil
}

func writePullRequest(out io.Writer, format string, pr pullRequestView) error {
	if format == outputJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(pr)
	}
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "Number:\t#%d\n", pr.Number)
	fmt.Fprintf(w, "Title:\t%s\n", pr.Title)
	fmt.Fprintf(w, "State:\t%s\n", pr.State)
	fmt.Fprintf(w, "URL:\t%s\n", pr.URL)
	fmt.Fprintf(w, "Author:\t%s\n", pr.Author)
	fmt.Fprintf(w, "Head:\t%s (%s)\n", pr.Head.Ref, pr.Head.Repository)
	fmt.Fprintf(w, "Base:\t%s\n", pr.Base.Ref)
	fmt.Fprintf(w, "Comments:\t%d\n", pr.Comments)
	fmt.Fprintf(w, "Commits:\t%d\n", pr.Commits)
	return w.Flush()
}
