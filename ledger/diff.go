package ledger

import (
	"github.com/pmezard/go-difflib/difflib"

	"github.com/poiesic/scout/core"
)

// changeRecords turns sequence-matcher opcodes into half-open line spans.
// Equal stretches are omitted; modified spans carry the replacement lines.
func changeRecords(a, b []string) []core.ChangeRecord {
	matcher := difflib.NewMatcher(a, b)

	var changes []core.ChangeRecord
	for _, op := range matcher.GetOpCodes() {
		switch op.Tag {
		case 'r':
			changes = append(changes, core.ChangeRecord{
				Op:        core.ChangeModified,
				FromStart: op.I1,
				FromEnd:   op.I2,
				ToStart:   op.J1,
				ToEnd:     op.J2,
				Lines:     append([]string(nil), b[op.J1:op.J2]...),
			})
		case 'i':
			changes = append(changes, core.ChangeRecord{
				Op:        core.ChangeAdded,
				FromStart: op.I1,
				FromEnd:   op.I2,
				ToStart:   op.J1,
				ToEnd:     op.J2,
				Lines:     append([]string(nil), b[op.J1:op.J2]...),
			})
		case 'd':
			changes = append(changes, core.ChangeRecord{
				Op:        core.ChangeRemoved,
				FromStart: op.I1,
				FromEnd:   op.I2,
				ToStart:   op.J1,
				ToEnd:     op.J2,
				Lines:     append([]string(nil), a[op.I1:op.I2]...),
			})
		}
	}
	return changes
}

// unifiedDiff renders a classic unified diff with three lines of context.
func unifiedDiff(aName, bName, a, b string) (string, error) {
	return difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        difflib.SplitLines(a),
		B:        difflib.SplitLines(b),
		FromFile: aName,
		ToFile:   bName,
		Context:  3,
	})
}
