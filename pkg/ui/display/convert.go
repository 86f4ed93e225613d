package display

import (
	"fmt"
	"strconv"

	"github.com/arthur-debert/tmplfs/pkg/commands/inspect"
	"github.com/arthur-debert/tmplfs/pkg/commands/pack"
	"github.com/arthur-debert/tmplfs/pkg/commands/validate"
)

// FromResult builds a report for the known command results.
func FromResult(result interface{}) (*Report, bool) {
	switch v := result.(type) {
	case *pack.Result:
		return FromPack(v), true
	case *validate.Result:
		return FromValidate(v), true
	case *inspect.Result:
		return FromInspect(v), true
	case *Report:
		return v, true
	default:
		return nil, false
	}
}

// FromPack reports written archives.
func FromPack(r *pack.Result) *Report {
	rep := &Report{
		Command: "pack",
		Summary: fmt.Sprintf("%s written (%s)", plural(len(r.Templates), "archive"), r.Compression),
		Status:  StatusOK,
	}
	for _, t := range r.Templates {
		rep.Sections = append(rep.Sections, Section{
			Title:  t.Name + " " + t.Version,
			Status: StatusOK,
			Fields: []Field{
				{Label: "archive", Value: t.Archive},
				{Label: "source", Value: t.Dir},
				{Label: "contents", Value: fmt.Sprintf("%s, %s", plural(t.Files, "file"), plural(t.Dirs, "directory"))},
				{Label: "size", Value: fmt.Sprintf("%s (%s uncompressed)", FormatBytes(t.Size), FormatBytes(t.Bytes))},
			},
			Lists: []List{{Title: "packages", Items: t.Packages}},
		})
	}
	return rep
}

// FromValidate reports manifest checks.
func FromValidate(r *validate.Result) *Report {
	rep := &Report{
		Command: "validate",
		Status:  StatusOK,
		Summary: fmt.Sprintf("%s valid", plural(len(r.Templates), "template")),
	}
	if !r.OK() {
		rep.Status = StatusError
		rep.Summary = fmt.Sprintf("%d of %s invalid", r.Invalid, plural(len(r.Templates), "template"))
	}

	for _, t := range r.Templates {
		s := Section{Title: t.Dir, Status: StatusOK}
		if !t.Valid {
			s.Status = StatusError
			s.Error = t.Error
		} else {
			s.Fields = []Field{
				{Label: "name", Value: t.Name},
				{Label: "version", Value: t.Version},
				{Label: "tests", Value: t.Tests},
			}
		}
		rep.Sections = append(rep.Sections, s)
	}
	return rep
}

// FromInspect reports archive contents.
func FromInspect(r *inspect.Result) *Report {
	title := r.Archive
	if r.Name != "" {
		title = r.Name + " " + r.Version
	}
	return &Report{
		Command: "inspect",
		Summary: fmt.Sprintf("%s, %s", plural(len(r.Files), "file"), plural(len(r.Packages), "package")),
		Status:  StatusInfo,
		Sections: []Section{{
			Title:  title,
			Status: StatusInfo,
			Fields: []Field{
				{Label: "archive", Value: r.Archive},
				{Label: "size", Value: FormatBytes(r.Size)},
			},
			Lists: []List{
				{Title: "files", Items: r.Files},
				{Title: "packages", Items: r.Packages},
				{Title: "fonts", Items: r.Fonts},
			},
		}},
	}
}

// FormatBytes renders n with a binary unit.
func FormatBytes(n int64) string {
	const unit = 1024
	if n < unit {
		return strconv.FormatInt(n, 10) + " B"
	}
	div, exp := int64(unit), 0
	for m := n / unit; m >= unit; m /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(n)/float64(div), "KMGTPE"[exp])
}

func plural(n int, noun string) string {
	if n == 1 {
		return "1 " + noun
	}
	if noun == "directory" {
		return fmt.Sprintf("%d directories", n)
	}
	return fmt.Sprintf("%d %ss", n, noun)
}
