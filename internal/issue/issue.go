// SPDX-License-Identifier: MPL-2.0

package issue

import (
	"strings"

	"github.com/charmbracelet/glamour"
	"golang.org/x/exp/slices"
)

const (
	InputNotFoundId Id = iota + 1
	UnsupportedFormatId
	CapabilityMissingId
	ExtractionFailedId
	ManifestNotFoundId
	WriteFailedId
	PackagingFailedId
	RenameFailedId
	InvalidVersionId
	ConfigLoadFailedId
	UnexpectedFailureId
)

type (
	Id int

	MarkdownMsg string

	HttpLink string

	Issue struct {
		id       Id          // ID used to lookup the issue
		mdMsg    MarkdownMsg // Markdown text that will be rendered
		extLinks []HttpLink  // external links that might be useful for the user
	}
)

var (
	render = glamour.Render

	inputNotFoundIssue = &Issue{
		id: InputNotFoundId,
		mdMsg: `
# Archive not found!

The mod archive you passed does not exist or cannot be read.

## Things you can try:
- Check the path for typos; quote it if it contains spaces
- Pass the archive file itself, not the folder it sits in`,
	}

	unsupportedFormatIssue = &Issue{
		id: UnsupportedFormatId,
		mdMsg: `
# Unsupported archive format!

Only ` + "`.scs`, `.zip` and `.rar`" + ` mods can be updated.

## Things you can try:
- Repack the mod as a zip and rename it to ` + "`.scs`" + `
- Check that the file extension matches the archive's real format`,
	}

	capabilityMissingIssue = &Issue{
		id: CapabilityMissingId,
		mdMsg: `
# RAR support not available!

This build of scsup was compiled without the RAR extractor.

## Things you can try:
- Use a release build, which includes RAR support
- Extract the mod with another tool and repack it as a zip
~~~
$ scsup update mod.zip 1.2.0
~~~`,
	}

	extractionFailedIssue = &Issue{
		id: ExtractionFailedId,
		mdMsg: `
# Could not extract the archive!

The archive is damaged, truncated, or not really the format its extension
claims.

## Things you can try:
- Download the mod again
- Open it with an archive manager to confirm it is intact`,
	}

	manifestNotFoundIssue = &Issue{
		id: ManifestNotFoundId,
		mdMsg: `
# No manifest.sii in the archive!

Every mod needs a ` + "`manifest.sii`" + ` describing its package. Nothing was
written and the archive was left untouched.

## Things you can try:
- Check that you picked the mod archive and not a map or save
- Inspect the archive to see what it contains:
~~~
$ scsup inspect mod.scs
~~~`,
	}

	writeFailedIssue = &Issue{
		id: WriteFailedId,
		mdMsg: `
# Could not update manifest.sii!

The manifest was found but the new version could not be written to the
temporary copy.

## Things you can try:
- Check free space in your temporary directory
- Point ` + "`TMPDIR`" + ` at a writable location and retry`,
	}

	packagingFailedIssue = &Issue{
		id: PackagingFailedId,
		mdMsg: `
# Could not write the updated archive!

## Things you can try:
- Check that the folder holding the input archive is writable
- Check free disk space
- Check ` + "`compression_level`" + ` in your config (-2 to 9)`,
	}

	renameFailedIssue = &Issue{
		id: RenameFailedId,
		mdMsg: `
# Could not move the updated archive into place!

The archive was packed but could not be given its final name.

## Things you can try:
- Close the game or any tool that has the target file open
- Delete or rename the existing file with that name`,
	}

	invalidVersionIssue = &Issue{
		id: InvalidVersionId,
		mdMsg: `
# Please enter a version number!

The version is written into the manifest and the output file name, so it
cannot be empty.

## Example:
~~~
$ scsup update base_mod.scs 1.2.3
~~~`,
	}

	configLoadFailedIssue = &Issue{
		id: ConfigLoadFailedId,
		mdMsg: `
# Failed to load configuration!

The configuration file could not be parsed or does not match the schema.

## Things you can try:
- Show where the file lives and what is loaded:
~~~
$ scsup config path
$ scsup config show
~~~
- Regenerate a default file:
~~~
$ scsup config init
~~~`,
		extLinks: []HttpLink{"https://cuelang.org/docs/"},
	}

	unexpectedFailureIssue = &Issue{
		id: UnexpectedFailureId,
		mdMsg: `
# Something unexpected went wrong!

## Things you can try:
- Run again with ` + "`--verbose`" + ` to see the full error chain
- Check that your temporary directory is writable`,
	}

	issues = map[Id]*Issue{
		inputNotFoundIssue.Id():     inputNotFoundIssue,
		unsupportedFormatIssue.Id(): unsupportedFormatIssue,
		capabilityMissingIssue.Id(): capabilityMissingIssue,
		extractionFailedIssue.Id():  extractionFailedIssue,
		manifestNotFoundIssue.Id():  manifestNotFoundIssue,
		writeFailedIssue.Id():       writeFailedIssue,
		packagingFailedIssue.Id():   packagingFailedIssue,
		renameFailedIssue.Id():      renameFailedIssue,
		invalidVersionIssue.Id():    invalidVersionIssue,
		configLoadFailedIssue.Id():  configLoadFailedIssue,
		unexpectedFailureIssue.Id(): unexpectedFailureIssue,
	}
)

func (i *Issue) Id() Id {
	return i.id
}

func (i *Issue) MarkdownMsg() MarkdownMsg {
	return i.mdMsg
}

func (i *Issue) ExtLinks() []HttpLink {
	return slices.Clone(i.extLinks)
}

// Render renders the page with the glamour style at stylePath ("dark",
// "light", "notty" or a JSON style file).
func (i *Issue) Render(stylePath string) (string, error) {
	var md strings.Builder
	md.WriteString(string(i.mdMsg))
	if len(i.extLinks) > 0 {
		md.WriteString("\n\n## See also:\n")
		for _, link := range i.extLinks {
			md.WriteString("- <" + string(link) + ">\n")
		}
	}
	return render(md.String(), stylePath)
}

// Values returns every catalog entry ordered by id.
func Values() []*Issue {
	out := make([]*Issue, 0, len(issues))
	for _, i := range issues {
		out = append(out, i)
	}
	slices.SortFunc(out, func(a, b *Issue) int { return int(a.id) - int(b.id) })
	return out
}

func Get(id Id) *Issue {
	return issues[id]
}
