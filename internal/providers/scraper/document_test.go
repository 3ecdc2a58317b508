package scraper

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/net/html"
)

// Sample HTML for testing
const (
	sampleHTML = `<!DOCTYPE html>
<html>
<head>
	<title>Yale University Test Page</title>
	<meta name="description" content="About Yale University">
	<style>.yale { color: blue; }</style>
</head>
<body>
	<header>
		<h1>Welcome to Yale University</h1>
		<nav>
			<a href="https://www.yale.edu/about">About Yale</a>
			<a href="https://www.yale.edu/admissions" title="Yale Admissions">Admissions</a>
		</nav>
	</header>
	<main>
		<p>Yale University is a private Ivy League research university in New Haven, Connecticut.</p>
		<p>Founded in 1701 as the Collegiate School, YALE is the third-oldest institution in the US.</p>
		<img src="https://www.yale.edu/images/logo.png" alt="Yale Logo">
		<!-- yale comment -->
	</main>
	<footer><p>&copy; 2024 yale.edu &amp; friends</p></footer>
</body>
</html>`

	noTokenHTML = `<!DOCTYPE html>
<html>
<head><title>Harvard</title></head>
<body>
	<div class="content" data-x="1">
		<h1>Simple Test</h1>
		<p class="text">Simple &lt;paragraph&gt; &amp; more</p>
		<!-- a comment -->
	</div>
</body>
</html>`
)

func TestParseRendersDoctypeAndComments(t *testing.T) {
	doc := Parse(sampleHTML)
	out := doc.HTML()

	assert.Contains(t, out, "<!DOCTYPE html>")
	assert.Contains(t, out, "<!-- yale comment -->")
	assert.Contains(t, out, `<meta name="description" content="About Yale University"/>`)
}

func TestParseMalformedHTML(t *testing.T) {
	inputs := []string{
		"",
		"just text",
		"<div><p>unclosed <span>tags",
		"<p>stray </div> close</p>",
		"<<<>>> & < >",
		"<html><body><table><td>cell</table>",
		"<title>no body</title>",
	}

	for _, input := range inputs {
		t.Run(input, func(t *testing.T) {
			doc := Parse(input)
			require.NotNil(t, doc)
			require.NotNil(t, doc.Root())
			assert.Equal(t, html.DocumentNode, doc.Root().Type)
			assert.NotNil(t, doc.Body(), "parser always synthesizes a body")
			assert.NotEmpty(t, doc.HTML())
		})
	}
}

func TestParseWrapsFragments(t *testing.T) {
	doc := Parse("<h1>YALE rocks</h1>")

	assert.Equal(t, "<html><head></head><body><h1>YALE rocks</h1></body></html>", doc.HTML())
}

func TestRenderIsStableAcrossRoundTrips(t *testing.T) {
	once := Parse(noTokenHTML).HTML()
	twice := Parse(once).HTML()

	assert.Equal(t, once, twice)
}

func TestFramesetHasNoBody(t *testing.T) {
	doc := Parse(`<!DOCTYPE html><html><head><title>Yale</title></head><frameset><frame src="a.html"></frameset></html>`)

	assert.Nil(t, doc.Body())
	assert.Empty(t, TextNodes(doc))
}
