package config

const SourceFileExt = ".fun"

// SourceFileExtensions are all recognized source file extensions
var SourceFileExtensions = []string{".fun", ".funlet"}

// DefaultPrompt is printed before each interactive read.
const DefaultPrompt = ">> "

// HistoryFileName is the history database filename used when no
// explicit path is configured; it lives in the user's home directory.
const HistoryFileName = ".funlet_history.db"
