package skills

// defaultEntries is the built-in skill synonym table. Tokens are lowercase;
// multi-word synonyms never match token-set lookups and exist for callers
// that match against free text.
var defaultEntries = []Entry{
	// Programming languages
	{Canonical: "python", Synonyms: []string{"py", "django", "flask", "fastapi", "pandas", "numpy"}},
	{Canonical: "javascript", Synonyms: []string{"js", "typescript", "ts", "node", "nodejs", "react", "angular", "vue"}},
	{Canonical: "java", Synonyms: []string{"spring", "hibernate", "maven", "gradle"}},
	{Canonical: "csharp", Synonyms: []string{"c#", "dotnet", ".net", "asp.net"}},
	{Canonical: "go", Synonyms: []string{"golang"}},
	{Canonical: "rust", Synonyms: []string{"cargo"}},
	{Canonical: "php", Synonyms: []string{"laravel", "symfony", "wordpress"}},

	// Frontend
	{Canonical: "react", Synonyms: []string{"reactjs", "react.js", "jsx"}},
	{Canonical: "angular", Synonyms: []string{"angularjs", "angular.js"}},
	{Canonical: "vue", Synonyms: []string{"vuejs", "vue.js", "nuxt"}},

	// Backend frameworks
	{Canonical: "nodejs", Synonyms: []string{"node", "node.js", "express", "nestjs"}},
	{Canonical: "django", Synonyms: []string{"drf"}},
	{Canonical: "flask", Synonyms: []string{"jinja"}},
	{Canonical: "spring", Synonyms: []string{"springboot", "spring-boot"}},

	// Cloud & DevOps
	{Canonical: "aws", Synonyms: []string{"ec2", "s3", "lambda", "cloud"}},
	{Canonical: "azure", Synonyms: []string{"aks"}},
	{Canonical: "gcp", Synonyms: []string{"gke", "bigquery"}},
	{Canonical: "docker", Synonyms: []string{"containers", "containerization"}},
	{Canonical: "kubernetes", Synonyms: []string{"k8s", "helm"}},
	{Canonical: "terraform", Synonyms: []string{"iac"}},

	// Databases
	{Canonical: "sql", Synonyms: []string{"mysql", "postgresql", "postgres", "sqlite", "database"}},
	{Canonical: "mongodb", Synonyms: []string{"mongo", "nosql"}},
	{Canonical: "redis", Synonyms: []string{"valkey", "memcached", "cache"}},

	// Machine learning
	{Canonical: "machine learning", Synonyms: []string{"ml", "ai"}},
	{Canonical: "deep learning", Synonyms: []string{"cnn", "rnn", "lstm", "transformers"}},
	{Canonical: "tensorflow", Synonyms: []string{"tf", "keras"}},
	{Canonical: "pytorch", Synonyms: []string{"torch"}},
	{Canonical: "scikit-learn", Synonyms: []string{"sklearn"}},
}

// seniorityKeywords maps seniority names to their trigger tokens.
var seniorityKeywords = []KeywordSet{
	{Name: "senior", Terms: []string{"senior", "sr", "lead", "principal", "staff", "experienced"}},
	{Name: "junior", Terms: []string{"junior", "jr", "entry", "graduate", "fresh", "intern"}},
	{Name: "mid", Terms: []string{"mid", "intermediate", "regular"}},
}

// domainKeywords maps business domains to their trigger tokens, first match wins.
var domainKeywords = []KeywordSet{
	{Name: "fintech", Terms: []string{"fintech", "finance", "banking", "trading", "payments"}},
	{Name: "healthcare", Terms: []string{"healthcare", "medical", "health", "clinical"}},
	{Name: "ecommerce", Terms: []string{"ecommerce", "e-commerce", "retail", "marketplace"}},
	{Name: "gaming", Terms: []string{"gaming", "game", "games", "entertainment"}},
}

// roleKeywords maps role types to their trigger tokens, first match wins.
var roleKeywords = []KeywordSet{
	{Name: "frontend", Terms: []string{"frontend", "front-end", "ui", "ux"}},
	{Name: "backend", Terms: []string{"backend", "back-end", "api", "server"}},
	{Name: "fullstack", Terms: []string{"fullstack", "full-stack"}},
	{Name: "devops", Terms: []string{"devops", "sre", "infrastructure", "platform"}},
	{Name: "data", Terms: []string{"data", "analytics", "ml"}},
}

// educationLevels grades education keywords, highest first. Alias matching is
// substring-based against free education text.
var educationLevels = []EducationLevel{
	{Level: "phd", Score: 1.0, Aliases: []string{"phd", "ph.d", "doctorate", "doctoral"}},
	{Level: "masters", Score: 0.8, Aliases: []string{"master", "msc", "mba", "m.s", "m.tech"}},
	{Level: "bachelors", Score: 0.6, Aliases: []string{"bachelor", "bsc", "b.s", "b.tech", "b.e"}},
	{Level: "diploma", Score: 0.4, Aliases: []string{"diploma", "certificate", "associate"}},
	{Level: "secondary", Score: 0.2, Aliases: []string{"high school", "secondary", "12th"}},
}

// domainProfiles describe professional domains for the relevance heuristic.
var domainProfiles = []DomainProfile{
	{
		Name:         "software_engineering",
		Keywords:     []string{"software", "development", "programming", "coding", "engineer"},
		Technologies: []string{"java", "python", "javascript", "react", "node", "angular", "spring"},
	},
	{
		Name:         "data_science",
		Keywords:     []string{"data", "analytics", "machine learning", "ai", "statistics"},
		Technologies: []string{"python", "sql", "pandas", "numpy", "tensorflow", "pytorch"},
	},
	{
		Name:         "devops",
		Keywords:     []string{"devops", "deployment", "infrastructure", "cloud", "automation"},
		Technologies: []string{"docker", "kubernetes", "aws", "azure", "jenkins", "terraform"},
	},
	{
		Name:         "frontend",
		Keywords:     []string{"frontend", "ui", "ux", "web design", "user interface"},
		Technologies: []string{"html", "css", "javascript", "react", "angular", "vue"},
	},
	{
		Name:         "backend",
		Keywords:     []string{"backend", "server", "api", "database", "microservices"},
		Technologies: []string{"java", "python", "node", "sql", "mongodb", "spring", "express"},
	},
	{
		Name:         "fintech",
		Keywords:     []string{"finance", "banking", "trading", "investment", "fintech"},
		Technologies: []string{"sql", "python", "java", "kafka"},
	},
	{
		Name:         "healthcare",
		Keywords:     []string{"healthcare", "medical", "health", "clinical"},
		Technologies: []string{"hl7", "fhir", "python", "sql"},
	},
	{
		Name:         "gaming",
		Keywords:     []string{"gaming", "game", "entertainment", "graphics"},
		Technologies: []string{"unity", "unreal", "c++", "c#"},
	},
}
