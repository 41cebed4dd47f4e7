package cmd

import (
	"fmt"
	"path"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/cobra/doc"
)

// https://pmarsceill.github.io/just-the-docs/docs/navigation-structure/
const rootDoc = `---
layout: default
title: %s
nav_order: %d
has_children: true
permalink: /
---
`

// child command without children
const childDoc = `---
layout: default
title: %s
parent: %s
nav_order: %d
---
`

// child with children
const childParentDoc = `---
layout: default
title: %s
parent: %s
nav_order: %d
has_children: true
---
`

// grandchildren
const grandchildDoc = `---
layout: default
title: %s
parent: %s
grand_parent: %s
nav_order: %d
---
`

// docType codes whether the command is a grandchild, child, etc
type docType int

const (
	root docType = iota
	child
	childParent
	grandchild
)

// meta is for describing the position/info for a command doc page
type meta struct {
	docType     docType
	title       string
	navOrder    int
	parent      string
	grandParent string
}

// docsCmd writes Markdown documentation for every command.
var docsCmd = &cobra.Command{
	Use:    "docs",
	Short:  "Write Markdown documentation for each command",
	Hidden: true,
	Args:   cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		dir, _ := cmd.Flags().GetString("dir")
		return makeDocs(dir)
	},
}

// makeDocs parses the commands and outputs Markdown documentation files to dir
func makeDocs(dir string) error {
	metas := map[string]meta{}
	buildMeta(RootCmd, 0, metas)

	filePrepender := func(filename string) string {
		m, ok := metas[docBase(filename)]
		if !ok {
			return ""
		}

		switch m.docType {
		case root:
			return fmt.Sprintf(rootDoc, m.title, m.navOrder)
		case child:
			return fmt.Sprintf(childDoc, m.title, m.parent, m.navOrder)
		case childParent:
			return fmt.Sprintf(childParentDoc, m.title, m.parent, m.navOrder)
		default:
			return fmt.Sprintf(grandchildDoc, m.title, m.parent, m.grandParent, m.navOrder)
		}
	}

	return doc.GenMarkdownTreeCustom(RootCmd, dir, filePrepender, linkHandler)
}

// buildMeta maps the base Markdown file name of the command, and of each of its
// documented descendants, to its position in the docs navigation.
func buildMeta(c *cobra.Command, navOrder int, metas map[string]meta) {
	m := meta{title: c.Name(), navOrder: navOrder}

	var children []*cobra.Command
	for _, sub := range c.Commands() {
		if sub.IsAvailableCommand() && !sub.IsAdditionalHelpTopicCommand() {
			children = append(children, sub)
		}
	}

	switch {
	case !c.HasParent():
		m.docType = root
	case !c.Parent().HasParent() && len(children) > 0:
		m.docType, m.parent = childParent, c.Parent().Name()
	case !c.Parent().HasParent():
		m.docType, m.parent = child, c.Parent().Name()
	default:
		m.docType, m.parent, m.grandParent = grandchild, c.Parent().Name(), c.Parent().Parent().Name()
	}
	metas[strings.ReplaceAll(c.CommandPath(), " ", "_")] = m

	for i, sub := range children {
		buildMeta(sub, i, metas)
	}
}

// linkHandler returns the URL to a documentation page
func linkHandler(filename string) string {
	base := docBase(filename)
	if base == RootCmd.Name() {
		return "/"
	}
	return base
}

// docBase is a Markdown file's name without its directory or extension
func docBase(filename string) string {
	name := filepath.Base(filename)
	return strings.TrimSuffix(name, path.Ext(name))
}

// set flags
func init() {
	docsCmd.Flags().String("dir", "./docs", "directory to write the Markdown files to")

	RootCmd.AddCommand(docsCmd)
}
