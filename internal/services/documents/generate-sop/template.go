// internal/services/documents/generate-sop/template.go
package generatesop

const defaultTemplate = `Statement of Purpose

I am writing to apply to {{.TargetProgram}}.{{if .Major}} I completed my undergraduate degree in {{.Major}}{{if .University}} at {{.University}}{{end}}, graduating with a GPA of {{.GPA}}.{{end}}
{{- if .Interests}}

Throughout my studies I developed a strong interest in {{.Interests}}, which shaped the coursework and projects I pursued.{{end}}
{{- if .TestScores}} My standardized test results ({{.TestScores}}) reflect my readiness for graduate-level work.{{end}}
{{- if .AdditionalGoals}}

{{.AdditionalGoals}}{{end}}

{{- if .Location}}

I am particularly drawn to studying in {{.Location}}, where I hope to build my academic and professional network.{{end}}

I believe {{.TargetProgram}} offers the environment and guidance I need to reach these goals, and I look forward to contributing to its community.
`
