package render

// Stylesheet is the embedded stylesheet of every assembled document
const Stylesheet = `<style>
  body { font-family: Cambria, Georgia, serif; max-width: 800px;
         margin: 40px auto; line-height: 1.6; color: #111; }
  h1, h2 { font-family: 'Segoe UI', sans-serif; color: #2a4d8f;
           margin-top: 1.6em; margin-bottom: .4em; }
  p { margin: 1em 0; font-size: 18px; }
  figure { margin: 30px 0; text-align: center; }
  figure img { max-width: 100%; height: auto; }
  figcaption { font-size: 14px; color: #555; margin-top: 5px; }
  hr.nejm { border: none; border-top: 2px solid #e0e0e0; margin: 60px 0; }
</style>`

// PageSeparator is emitted after the content of every page
const PageSeparator = "<hr class='nejm'>\n"

const (
	// DefaultTitle is the <title> of the document head
	DefaultTitle = "Converted PDF"
	// DefaultHeading is the top-level <h1> of the document body
	DefaultHeading = "Converted PDF Document"
)
