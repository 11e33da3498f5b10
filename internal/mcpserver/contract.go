package mcpserver

// MetadataFormatContract describes the metadata block format that
// LLM consumers should follow when creating or updating documents.
const MetadataFormatContract = `# Ansuz Metadata Block Format

Documents in an Ansuz workspace are extended Markdown: ordinary
Markdown text plus zero or more metadata blocks fenced by ` + "`" + `---` + "`" + ` lines.

## Structure

` + "```" + `markdown
---
title: Human-readable title         # global block field
subtitle: Optional subtitle
---

Body text in standard Markdown.

---
SCOPE: chapters
order: 1
draft: true
---

More body text.

---
QUILL: manuscript
---
` + "```" + `

## Block kinds

1. **Global block** – no keyword line. Its ` + "`" + `key: value` + "`" + ` fields apply to
   the whole document. At most ONE global block per document.
2. **Scoped block** – first content line is ` + "`" + `SCOPE: <name>` + "`" + `. Its fields
   apply to the region the block introduces.
3. **Quill block** – first content line is ` + "`" + `QUILL: <name>` + "`" + `. It binds the
   document (or region) to a named rendering template.

## Rules

1. **Delimiters.** A line starting with ` + "`" + `---` + "`" + ` opens or closes a block,
   UNLESS both its neighbor lines are blank – then it is a Markdown
   horizontal rule and has no metadata meaning. The first and last lines
   of a document count as having blank neighbors beyond the edge.
2. **Names** are lowercase snake_case: start with a letter or
   underscore, then letters, digits, underscores (` + "`" + `chapters` + "`" + `,
   ` + "`" + `sub_documents` + "`" + `). The name ` + "`" + `body` + "`" + ` is reserved and rejected.
3. **Fields** are flat ` + "`" + `key: value` + "`" + ` pairs, one per line. No nesting.
4. **Values** are typed by shape: ` + "`" + `true` + "`" + `/` + "`" + `false` + "`" + ` are booleans, numeric
   literals are numbers, everything else is a string. Structural YAML
   openers (` + "`" + `[` + "`" + `, ` + "`" + `{` + "`" + `, ` + "`" + `&` + "`" + `, ` + "`" + `*` + "`" + `, ` + "`" + `|` + "`" + `, ` + "`" + `>` + "`" + `) are not supported.
5. **A global field must not share its name** with any SCOPE or QUILL
   name used in the same document.
6. **An unterminated block** (opening ` + "`" + `---` + "`" + ` with no closing one) runs to
   the end of the document and is reported as an issue.
7. **Encoding** is UTF-8 with a trailing newline.

## Example

` + "```" + `markdown
---
title: Field Notes
author: J. Doe
---

# Field Notes

Intro paragraph.

---
SCOPE: observations
order: 2
reviewed: false
---

Observation text.
` + "```" + `
`
