package posts

import (
	"strconv"

	"github.com/giantswarm/mcp-wordpress/internal/capability"
	"github.com/giantswarm/mcp-wordpress/internal/wordpress"
)

// createdRecord is the one-line summary returned by create-post.
func createdRecord(post *wordpress.Post) capability.Record {
	return capability.Record{
		Headline: "Post created successfully!",
		Inline:   true,
		Fields: []capability.Field{
			{Label: "ID", Value: strconv.FormatInt(post.ID, 10)},
			{Label: "Title", Value: post.Title.String()},
			{Label: "Status", Value: post.Status},
			{Label: "Link", Value: post.Link},
		},
	}
}

// detailRecord is the full post view returned by the resources.
func detailRecord(post *wordpress.Post) capability.Record {
	return capability.Record{
		Fields: []capability.Field{
			{Label: "Post ID", Value: strconv.FormatInt(post.ID, 10)},
			{Label: "Title", Value: post.Title.String()},
			{Label: "Status", Value: post.Status},
			{Label: "Date", Value: post.Date},
			{Label: "Modified", Value: post.Modified},
			{Label: "Slug", Value: post.Slug},
			{Label: "Link", Value: post.Link},
		},
		BodyLabel: "Content",
		Body:      post.Content.String(),
	}
}
