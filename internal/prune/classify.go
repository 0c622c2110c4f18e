package prune

// mainEntryChecker reports whether file is the main entry of its package.
// root bounds the upward manifest search.
type mainEntryChecker interface {
	isMainEntry(root, file string) bool
}

// classifier combines the pure rule tables with main-entry protection. The
// manifest lookup only runs for files the rules already flagged.
type classifier struct {
	rules *RuleSet
	mains mainEntryChecker
}

func (c *classifier) shouldPrune(root, path, name string, isDir bool) bool {
	if !c.rules.Match(path, name, isDir) {
		return false
	}
	if isDir || c.mains == nil {
		return true
	}
	return !c.mains.isMainEntry(root, path)
}
