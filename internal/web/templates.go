package web

import "html/template"

var (
	viewTmpl     = template.Must(template.New("view").Parse(viewHTML))
	notFoundTmpl = template.Must(template.New("notfound").Parse(notFoundHTML))
	indexTmpl    = template.Must(template.New("index").Parse(indexHTML))
)

const viewHTML = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<meta name="robots" content="noindex">
<title>{{.Subject}}</title>
<style>
body { font-family: sans-serif; margin: 0; background: #f4f4f4; }
.meta { background: #fff; border-bottom: 1px solid #ddd; padding: 1em 1.5em; }
.meta h1 { font-size: 1.2em; margin: 0 0 0.3em; }
.meta p { color: #666; margin: 0.2em 0; font-size: 0.9em; }
.mail { background: #fff; margin: 1em auto; max-width: 60em; padding: 1.5em; }
.mail pre { white-space: pre-wrap; word-wrap: break-word; }
</style>
</head>
<body>
<div class="meta">
<h1>{{.Subject}}</h1>
<p>From: {{.From}}</p>
<p>Received: {{.Received}}</p>
</div>
<div class="mail">{{.Body}}</div>
</body>
</html>
`

const notFoundHTML = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="robots" content="noindex">
<title>Message not found</title>
<style>
body { font-family: sans-serif; text-align: center; margin-top: 15vh; color: #444; }
</style>
</head>
<body>
<h1>This message has expired or does not exist</h1>
<p>Messages are kept for a short while after arrival and then deleted.</p>
</body>
</html>
`

const indexHTML = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="robots" content="noindex">
<title>mailtrash</title>
<style>
body { font-family: sans-serif; text-align: center; margin-top: 15vh; color: #444; }
</style>
</head>
<body>
<h1>mailtrash</h1>
<p>Accepting mail for {{.Domain}}.</p>
<p>{{.Count}} message(s) currently held. Each one vanishes shortly after arrival.</p>
</body>
</html>
`
