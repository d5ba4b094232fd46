package service

// KeywordConfig groups every keyword table used by the detectors
// it is injected into the analyzer service so tests can swap in custom sets
type KeywordConfig struct {
	// matched against repository topics and lower-cased descriptions
	AIKeywords     []string
	CryptoKeywords []string

	// primary languages associated with each domain
	AILanguages     []string
	CryptoLanguages []string

	// a readme must contain at least one of these to count as deep
	ReadmeSections []string

	// library tokens searched inside dependency files
	AILibraries     []string
	CryptoLibraries []string

	// candidate dependency filenames probed on each deep-scanned repository
	DependencyFiles []string
}

// GetDefaultKeywords returns the production keyword tables
func GetDefaultKeywords() KeywordConfig {
	return KeywordConfig{
		AIKeywords: []string{
			"tensorflow", "pytorch", "scikit-learn", "torch", "keras",
			"mxnet", "openai", "transformers", "natural language processing", "nlp",
			"machine learning", "ml", "deep learning",
		},
		CryptoKeywords: []string{
			"solidity", "rust", "web3", "web3.js", "ethers.js", "nft",
			"smart contract", "blockchain", "decentralized", "defi", "dao",
			"cryptocurrency", "bitcoin", "ethereum", "dapp",
		},
		AILanguages:     []string{"Python", "JavaScript", "TypeScript", "Rust", "C++", "Java"},
		CryptoLanguages: []string{"Solidity", "Rust", "JavaScript", "TypeScript", "Go", "C++"},
		ReadmeSections: []string{
			"installation", "usage", "getting started", "example",
			"how to", "setup", "tutorial", "documentation",
		},
		AILibraries: []string{
			"tensorflow", "torch", "pytorch", "scikit-learn", "keras", "mxnet", "transformers",
		},
		CryptoLibraries: []string{
			"web3", "ethers", "solidity", "rust", "bitcoin", "ethereum",
		},
		DependencyFiles: []string{
			"requirements.txt", "environment.yml", "Pipfile", "package.json", "Cargo.toml",
		},
	}
}
