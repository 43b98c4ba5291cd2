// Package skills provides skill canonicalization, synonym matching, and
// keyword-frequency analysis over raw resume and job-description text.
//
// All tables in this package are initialized once and never mutated, so they
// are safe to share across concurrent analyses without locking.
package skills

import "strings"

// aliases maps common skill spellings to their canonical form. Lookup is
// case-insensitive and trimmed; unknown skills pass through unchanged.
var aliases = map[string]string{
	"js":                   "javascript",
	"ts":                   "typescript",
	"nodejs":               "node.js",
	"node js":              "node.js",
	"nextjs":               "next.js",
	"reactjs":              "react",
	"react.js":             "react",
	"vuejs":                "vue",
	"vue.js":               "vue",
	"k8s":                  "kubernetes",
	"golang":               "go",
	"postgres":             "postgresql",
	"gcp":                  "google cloud",
	"amazon web services":  "aws",
	"microsoft azure":      "azure",
	"ci cd":                "ci/cd",
	"cicd":                 "ci/cd",
	"ms sql":               "sql server",
	"mssql":                "sql server",
	"c plus plus":          "c++",
	"c sharp":              "c#",
	"dotnet":               ".net",
	".net core":            ".net",
	"hil bench":            "hil",
	"hardware in the loop": "hil",
	"hardware-in-the-loop": "hil",
	"sil testing":          "sil",
	"ml":                   "machine learning",
	"tf":                   "tensorflow",
	"sklearn":              "scikit-learn",
	"qa":                   "quality assurance",
	"tdd":                  "test driven development",
	"oop":                  "object oriented programming",
	"rest apis":            "rest api",
	"restful apis":         "rest api",
	"restful":              "rest api",
}

// Normalize canonicalizes a skill string via the alias table. Total function;
// no failure modes.
func Normalize(skill string) string {
	key := strings.ToLower(strings.TrimSpace(skill))
	if canonical, ok := aliases[key]; ok {
		return canonical
	}
	return key
}
