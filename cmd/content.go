package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/goccy/go-json"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"doll-web/pkg/services"
)

var (
	flagFormat         string
	flagSnapshotFormat string
)

var contentCmd = &cobra.Command{
	Use:   "content",
	Short: "Inspect and export site content",
}

var contentListCmd = &cobra.Command{
	Use:   "list <collection>",
	Short: "List the entries of a collection",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, collection, err := contentSetup(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		return listCollection(cmd.Context(), svc, collection, cmd.OutOrStdout())
	},
}

var contentGetCmd = &cobra.Command{
	Use:   "get <collection> <slug>",
	Short: "Print one entry as JSON",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, collection, err := contentSetup(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		item, err := lookup(cmd.Context(), svc, collection, args[1])
		if err != nil {
			return err
		}
		if item == nil {
			return fmt.Errorf("%s %q not found", args[0], args[1])
		}
		return writeJSON(cmd.OutOrStdout(), item)
	},
}

var contentExportCmd = &cobra.Command{
	Use:   "export <collection>",
	Short: "Export a collection as JSON, YAML or Markdown",
	Long: `Export prints every entry of a collection in canonical form.

Examples:
  doll-web content export news --format yaml
  doll-web content export projects --format markdown > projects.md`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, collection, err := contentSetup(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		return exportCollection(cmd.Context(), svc, collection, flagFormat, cmd.OutOrStdout())
	},
}

var contentSnapshotCmd = &cobra.Command{
	Use:   "snapshot <dir>",
	Short: "Copy every collection from the CMS into front-matter files",
	Long: `Snapshot writes <dir>/<collection>/<slug>.md (or .json) for every entry in
the CMS so the site can later be served with CONTENT_SOURCE=files.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		src := services.NewStrapiSource(ctx, cfg.CMSURL, cfg.CMSToken)
		queries := []services.CollectionQuery{
			{Collection: services.CollectionNews, Sort: "publishDate:desc"},
			{Collection: services.CollectionSolution, Sort: "order:asc"},
			{Collection: services.CollectionProject, Sort: "title:asc", Populate: true},
		}
		for _, q := range queries {
			n, err := services.Snapshot(ctx, src, q, args[0], flagSnapshotFormat)
			if err != nil {
				return fmt.Errorf("snapshot %s: %w", q.Collection, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s: %d files\n", q.Collection, n)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(contentCmd)
	contentCmd.AddCommand(contentListCmd, contentGetCmd, contentExportCmd, contentSnapshotCmd)

	contentExportCmd.Flags().StringVarP(&flagFormat, "format", "f", "json", "Output format: json, yaml or markdown")
	contentSnapshotCmd.Flags().StringVar(&flagSnapshotFormat, "format", "yaml", "Front matter format: yaml, toml or json")
}

func contentSetup(ctx context.Context, name string) (*services.ContentService, string, error) {
	collection, err := resolveCollection(name)
	if err != nil {
		return nil, "", err
	}
	src, err := newContentSource(ctx, cfg)
	if err != nil {
		return nil, "", err
	}
	return newContentService(src, cfg), collection, nil
}

func listCollection(ctx context.Context, svc *services.ContentService, collection string, w io.Writer) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	switch collection {
	case services.CollectionNews:
		items, err := svc.NewsItems(ctx)
		if err != nil {
			return err
		}
		fmt.Fprintln(tw, "ID\tSLUG\tDATE\tTITLE")
		for _, it := range items {
			fmt.Fprintf(tw, "%d\t%s\t%s\t%s\n", it.ID, it.Slug, it.PublishDate, it.Title)
		}
	case services.CollectionSolution:
		items, err := svc.Solutions(ctx)
		if err != nil {
			return err
		}
		fmt.Fprintln(tw, "ID\tSLUG\tORDER\tTITLE")
		for _, it := range items {
			fmt.Fprintf(tw, "%d\t%s\t%d\t%s\n", it.ID, it.Slug, it.Order, it.Title)
		}
	case services.CollectionProject:
		items, err := svc.Projects(ctx)
		if err != nil {
			return err
		}
		fmt.Fprintln(tw, "ID\tSLUG\tSTATUS\tTITLE")
		for _, it := range items {
			fmt.Fprintf(tw, "%d\t%s\t%s\t%s\n", it.ID, it.Slug, it.ProjectStatus, it.Title)
		}
	}
	return tw.Flush()
}

// lookup returns nil, nil when nothing matches slug.
func lookup(ctx context.Context, svc *services.ContentService, collection, slug string) (any, error) {
	switch collection {
	case services.CollectionNews:
		it, err := svc.NewsItem(ctx, slug)
		if err != nil || it == nil {
			return nil, err
		}
		return it, nil
	case services.CollectionSolution:
		it, err := svc.Solution(ctx, slug)
		if err != nil || it == nil {
			return nil, err
		}
		return it, nil
	default:
		it, err := svc.Project(ctx, slug)
		if err != nil || it == nil {
			return nil, err
		}
		return it, nil
	}
}

func exportCollection(ctx context.Context, svc *services.ContentService, collection, format string, w io.Writer) error {
	var (
		items any
		docs  []markdownDoc
	)
	switch collection {
	case services.CollectionNews:
		list, err := svc.NewsItems(ctx)
		if err != nil {
			return err
		}
		items = list
		for _, it := range list {
			docs = append(docs, markdownDoc{title: it.Title, sections: []markdownSection{{html: services.RenderContent(it.Body)}}})
		}
	case services.CollectionSolution:
		list, err := svc.Solutions(ctx)
		if err != nil {
			return err
		}
		items = list
		for _, it := range list {
			docs = append(docs, markdownDoc{title: it.Title, sections: []markdownSection{{html: services.RenderRichTextString(it.Description)}}})
		}
	case services.CollectionProject:
		list, err := svc.Projects(ctx)
		if err != nil {
			return err
		}
		items = list
		for _, it := range list {
			doc := markdownDoc{title: it.Title, sections: []markdownSection{{html: services.RenderRichTextString(it.Description)}}}
			for _, s := range it.BodySections {
				doc.sections = append(doc.sections, markdownSection{heading: s.Heading, html: services.RenderContent(s.Body)})
			}
			docs = append(docs, doc)
		}
	}

	switch format {
	case "json":
		return writeJSON(w, items)
	case "yaml", "yml":
		return writeYAML(w, items)
	case "markdown", "md":
		return writeMarkdown(w, docs)
	default:
		return fmt.Errorf("unknown format %q (want json, yaml or markdown)", format)
	}
}

func writeJSON(w io.Writer, v any) error {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, string(out))
	return err
}

// writeYAML goes through JSON so that field names and rich content match
// the API's JSON form.
func writeYAML(w io.Writer, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return err
	}
	var generic any
	if err := json.Unmarshal(raw, &generic); err != nil {
		return err
	}
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(generic); err != nil {
		return err
	}
	return enc.Close()
}

type markdownSection struct {
	heading string
	html    string
}

type markdownDoc struct {
	title    string
	sections []markdownSection
}

func writeMarkdown(w io.Writer, docs []markdownDoc) error {
	var b strings.Builder
	for i, d := range docs {
		if i > 0 {
			b.WriteString("\n---\n\n")
		}
		fmt.Fprintf(&b, "# %s\n", d.title)
		for _, s := range d.sections {
			md, err := services.ToMarkdown(s.html)
			if err != nil {
				return err
			}
			if s.heading != "" {
				fmt.Fprintf(&b, "\n## %s\n", s.heading)
			}
			if md != "" {
				fmt.Fprintf(&b, "\n%s\n", md)
			}
		}
	}
	_, err := io.WriteString(w, b.String())
	return err
}

func stdinOrFile(path string) ([]byte, error) {
	if path == "" || path == "-" {
		return io.ReadAll(os.Stdin)
	}
	return os.ReadFile(path)
}
