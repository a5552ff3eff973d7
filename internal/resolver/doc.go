package resolver

// Package resolver wraps the external media resolver: the yt-dlp pipeline that
// turns a URL into metadata or a downloaded file. The coordinator only sees
// the Resolver interface so tests can substitute a stub.
