package valueobject

// Branch identifies the store a record belongs to
type Branch string

const (
	BranchPrimary   Branch = "PRIMARY"
	BranchSecondary Branch = "SECONDARY"
)

// IsValid checks if the branch is a known store
func (b Branch) IsValid() bool {
	switch b {
	case BranchPrimary, BranchSecondary:
		return true
	}
	return false
}

// String returns the string representation
func (b Branch) String() string {
	return string(b)
}

// AllBranches lists every known branch
func AllBranches() []Branch {
	return []Branch{BranchPrimary, BranchSecondary}
}

// BranchFilter selects either a single branch or all branches.
// The zero value matches everything.
type BranchFilter struct {
	branch Branch
	all    bool
}

// FilterAllBranches matches records from every branch
func FilterAllBranches() BranchFilter {
	return BranchFilter{all: true}
}

// FilterBranch matches records from a single branch
func FilterBranch(b Branch) BranchFilter {
	return BranchFilter{branch: b}
}

// ParseBranchFilter interprets a query parameter: empty or "ALL" means
// every branch, anything else must be a valid branch name.
func ParseBranchFilter(s string) (BranchFilter, bool) {
	if s == "" || s == "ALL" {
		return FilterAllBranches(), true
	}
	b := Branch(s)
	if !b.IsValid() {
		return BranchFilter{}, false
	}
	return FilterBranch(b), true
}

// IsAll returns true when the filter matches every branch
func (f BranchFilter) IsAll() bool {
	return f.all || f.branch == ""
}

// Branch returns the selected branch; only meaningful when IsAll is false
func (f BranchFilter) Branch() Branch {
	return f.branch
}

// Matches reports whether a record in branch b passes the filter
func (f BranchFilter) Matches(b Branch) bool {
	if f.IsAll() {
		return true
	}
	return f.branch == b
}

// String returns "ALL" or the branch name
func (f BranchFilter) String() string {
	if f.IsAll() {
		return "ALL"
	}
	return f.branch.String()
}
