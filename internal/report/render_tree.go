// Copyright (C) 2021-2025 Intel Corporation
// SPDX-License-Identifier: BSD-3-Clause

package report

import (
	"fmt"
	htmltemplate "html/template"
	"log/slog"

	"github.com/xlab/treeprint"

	"gpuspect/internal/table"
)

// revisionTree builds the revision ranges as one branch per family with one
// node per row.
func revisionTree(tableValues table.TableValues) (treeprint.Tree, error) {
	indices := make(map[string]int)
	for _, name := range []string{"Family", "Family ID", "Row", "Product Line", "Revisions", "ASIC", "Shadowed By"} {
		idx, err := table.GetFieldIndex(name, tableValues)
		if err != nil {
			return nil, err
		}
		indices[name] = idx
	}
	value := func(name string, row int) string {
		return tableValues.Fields[indices[name]].Values[row]
	}
	tree := treeprint.NewWithRoot(RevisionTableName)
	var branch treeprint.Tree
	currentFamily := ""
	for row := range len(tableValues.Fields[0].Values) {
		if family := value("Family", row); family != currentFamily || branch == nil {
			currentFamily = family
			branch = tree.AddBranch(fmt.Sprintf("%s (%s)", family, value("Family ID", row)))
		}
		node := fmt.Sprintf("[%s] %s %s", value("Row", row), value("Revisions", row), value("ASIC", row))
		if productLine := value("Product Line", row); productLine != "" {
			node += " (" + productLine + ")"
		}
		if shadow := value("Shadowed By", row); shadow != "" {
			node += " shadowed by [" + shadow + "]"
		}
		branch.AddNode(node)
	}
	return tree, nil
}

func revisionTableTextRenderer(tableValues table.TableValues) string {
	tree, err := revisionTree(tableValues)
	if err != nil {
		slog.Warn(err.Error())
		return DefaultTextTableRendererFunc(tableValues)
	}
	return tree.String()
}

// revisionTableHTMLRenderer shows the tree preformatted, followed by the rows
// as a regular table.
func revisionTableHTMLRenderer(tableValues table.TableValues) string {
	tree, err := revisionTree(tableValues)
	if err != nil {
		slog.Warn(err.Error())
		return DefaultHTMLTableRendererFunc(tableValues)
	}
	return "<pre>" + htmltemplate.HTMLEscapeString(tree.String()) + "</pre>\n" + DefaultHTMLTableRendererFunc(tableValues)
}
