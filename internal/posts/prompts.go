package posts

var promptSources = map[string]string{
	PromptCreateNewPost: createNewPostPrompt,
	PromptRewritePost:   rewritePostPrompt,
}

// promptContext is available to every prompt template. Prompt arguments
// are layered on top.
var promptContext = map[string]interface{}{
	"create_tool": ToolCreatePost,
}

const createNewPostPrompt = `# Create WordPress Post: {{ .topic }}

Please create a WordPress post with the following specifications:

## Post Details
- **Topic**: {{ .topic }}
- **Post Type**: {{ .post_type }}
- **Target Audience**: {{ .target_audience }}

## Instructions
1. Generate an engaging, SEO-friendly title for this topic
2. Write comprehensive content including:
   - Compelling introduction
   - Well-structured body with headings (H2, H3)
   - Key points in bullet lists where appropriate
   - Practical examples or tips
   - Strong conclusion with call-to-action
3. Format content using proper HTML:
   - Use <h2>, <h3> for headings
   - Use <p> for paragraphs
   - Use <ul>/<ol> and <li> for lists
   - Use <strong> and <em> for emphasis
4. Create the post as a draft first for review
5. Use the {{ .create_tool }} tool with the generated content

After creation, provide the post ID and link for review.`

const rewritePostPrompt = `# Rewrite WordPress Post {{ .post_id }}

Please rewrite an existing WordPress post in a {{ .tone | lower }} tone.

## Instructions
1. Read the current version from the resource post://by-id/{{ .post_id }}
2. Keep the original topic, key facts and links
3. Rewrite the title and content in a {{ .tone | lower }} tone, keeping the HTML structure:
   - <h2>, <h3> for headings
   - <p> for paragraphs
   - <ul>/<ol> and <li> for lists
4. Create the rewritten version as a new draft with the {{ .create_tool }} tool
5. Leave the original post untouched

After creation, provide the new post ID and link next to the original post ID {{ .post_id }}.`
