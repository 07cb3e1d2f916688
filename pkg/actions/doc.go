// Package actions issues GitHub Actions workflow commands and maintains the
// runner's environment files.
//
// Each effect is applied to the current process (so a tool started later
// in the same step sees it) and to the runner file that carries it to
// later steps:
//
//	r := actions.New(os.Stdout)
//	r.AddPath(dir)                                   // PATH, $GITHUB_PATH
//	r.ExportVariable("JARL_OUTPUT_FORMAT", "github") // env, $GITHUB_ENV
//	r.SetOutput("jarl-version", "0.0.250")           // $GITHUB_OUTPUT
//	r.AddMatcher(path)                               // ::add-matcher::
//
// Outside a runner the files are not set and only the process environment
// changes, so the same binary works locally.
package actions
