// Package workflow manages the scaffolded workspace files for blogx.
//
// # Embedded Defaults
//
// Defaults are embedded at compile time from the defaults/ directory:
//   - defaults/archetype.md    - Front matter template for 'blogx new'
//   - defaults/frontmatter.yaml - Required-field rules for 'blogx lint'
//
// These files are embedded using //go:embed directives in workflow.go.
//
// # Runtime Customization
//
// Users can customize either file after 'blogx init':
//   - .blogx/archetype.md
//   - .blogx/frontmatter.yaml
//
// Run 'blogx init -r' to reset them to the embedded defaults.
package workflow
