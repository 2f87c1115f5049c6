package domain

// RemoteSource is a classified remote repository reference and the scratch
// directory it is cloned into
type RemoteSource struct {
	DerivedPath string
	URI         string
}

// RepoSource represents parsed repository source information
type RepoSource struct {
	IsRemote bool
	Owner    string
	Path     string
	Repo     string
}

// TransferStats mirrors the counters a clone reports while receiving a pack
type TransferStats struct {
	IndexedDeltas   int
	ReceivedObjects int
	TotalDeltas     int
	TotalObjects    int
}
