package preview

import (
	"html/template"

	"resume-profile/internal/profile"
)

var pageTemplates = template.Must(template.New("preview").Funcs(template.FuncMap{
	"styles": profile.Styles,
}).Parse(`
{{define "start"}}<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>Preparing your profile</title>
<style>{{styles}}</style>
</head>
<body>
{{end}}

{{define "hide"}}{{if .}}<script>document.getElementById({{.}}).classList.add("done");</script>{{end}}{{end}}

{{define "loading"}}{{template "hide" .Prev}}
<div class="profile loading" id="{{.ID}}" role="status" aria-live="polite">{{.Message}}</div>
{{end}}

{{define "redirect"}}{{template "hide" .Prev}}
<meta http-equiv="refresh" content="0;url={{.Location}}">
<script>window.location.replace({{.Location}});</script>
<noscript><p class="profile"><a href="{{.Location}}">Continue</a></p></noscript>
{{end}}

{{define "error"}}{{template "hide" .Prev}}
<div class="profile error" role="alert">Something went wrong while preparing your profile. Please try again in a moment.</div>
{{end}}

{{define "ready"}}{{template "hide" .Prev}}
{{.Profile}}
{{end}}

{{define "end"}}</body>
</html>
{{end}}
`))

type loadingData struct {
	ID      string
	Prev    string
	Message string
}

type redirectData struct {
	Prev     string
	Location string
}

type errorData struct {
	Prev string
}

type readyData struct {
	Prev    string
	Profile template.HTML
}
