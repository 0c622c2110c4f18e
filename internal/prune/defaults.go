package prune

// DefaultDirectories are directory names that are safe to remove from an
// installed dependency tree.
var DefaultDirectories = []string{
	"__tests__",
	"test",
	"tests",
	"powered-test",
	"docs",
	"doc",
	".idea",
	".vscode",
	"website",
	"images",
	"assets",
	"example",
	"examples",
	"coverage",
	".nyc_output",
	".circleci",
	".github",
}

// DefaultFiles are file names that are safe to remove.
var DefaultFiles = []string{
	"Makefile",
	"Gulpfile.js",
	"Gruntfile.js",
	"gulpfile.js",
	".DS_Store",
	".tern-project",
	".gitattributes",
	".editorconfig",
	".eslintrc",
	"eslint",
	".eslintrc.js",
	".eslintrc.json",
	".eslintrc.yml",
	".eslintignore",
	".stylelintrc",
	"stylelint.config.js",
	".stylelintrc.json",
	".stylelintrc.yaml",
	".stylelintrc.yml",
	".stylelintrc.js",
	".htmllintrc",
	"htmllint.js",
	".lint",
	".npmrc",
	".npmignore",
	".jshintrc",
	".flowconfig",
	".documentup.json",
	".yarn-metadata.json",
	".travis.yml",
	"appveyor.yml",
	".gitlab-ci.yml",
	"circle.yml",
	".coveralls.yml",
	"CHANGES",
	"changelog",
	"LICENSE.txt",
	"LICENSE",
	"LICENSE-MIT",
	"LICENSE.BSD",
	"license",
	"LICENCE.txt",
	"LICENCE",
	"LICENCE-MIT",
	"LICENCE.BSD",
	"licence",
	"AUTHORS",
	"CONTRIBUTORS",
	".yarn-integrity",
	".yarnclean",
	"_config.yml",
	".babelrc",
	".yo-rc.json",
	"jest.config.js",
	"karma.conf.js",
	"wallaby.js",
	"wallaby.conf.js",
	".prettierrc",
	".prettierrc.yml",
	".prettierrc.toml",
	".prettierrc.js",
	".prettierrc.json",
	"prettier.config.js",
	".appveyor.yml",
	"tsconfig.json",
	"tslint.json",
	"README",
}

// DefaultExtensions are file extensions that are safe to remove.
var DefaultExtensions = []string{
	".markdown",
	".md",
	".mkd",
	".ts",
	".jst",
	".coffee",
	".tgz",
	".swp",
}

// ExperimentalFiles extends DefaultFiles when Experimental.DefaultFiles is
// enabled: build tool configs, env examples, CI and docs files.
var ExperimentalFiles = []string{
	// bundlers and build tools
	"webpack.config.js",
	"webpack.config.ts",
	"rollup.config.js",
	"rollup.config.mjs",
	"rollup.config.ts",
	"vite.config.js",
	"vite.config.ts",
	"esbuild.config.js",
	"tsup.config.ts",
	"bunup.config.ts",
	"babel.config.js",
	"babel.config.json",
	".babelrc.js",
	".babelrc.json",
	".swcrc",
	"postcss.config.js",
	"tailwind.config.js",
	"next.config.js",
	"nuxt.config.js",
	"svelte.config.js",
	"turbo.json",
	"lerna.json",
	"nx.json",

	// test runners
	"jest.config.ts",
	"jest.config.json",
	"vitest.config.js",
	"vitest.config.ts",
	"karma.conf.ts",
	".mocharc",
	".mocharc.js",
	".mocharc.json",
	".mocharc.yml",
	".nycrc",
	".nycrc.json",
	".c8rc.json",
	"playwright.config.ts",
	"cypress.config.js",
	"cypress.json",

	// linters and formatters
	".eslintrc.cjs",
	".eslintrc.yaml",
	"eslint.config.js",
	"eslint.config.mjs",
	".prettierrc.cjs",
	".prettierrc.yaml",
	".prettierignore",
	"prettier.config.cjs",
	".stylelintignore",
	".jscsrc",
	".jshintignore",
	"biome.json",
	".commitlintrc",
	".commitlintrc.json",
	"commitlint.config.js",
	".lintstagedrc",
	".huskyrc",
	".releaserc",
	".editorconfig-checker.json",

	// environment examples
	".env.example",
	".env.sample",
	".env.template",
	".env.test",

	// CI and repository metadata
	".travis.yaml",
	"azure-pipelines.yml",
	".drone.yml",
	"Jenkinsfile",
	"codecov.yml",
	".codecov.yml",
	".gitmodules",
	".gitignore",
	".dockerignore",
	"Dockerfile",
	"docker-compose.yml",
	".nvmrc",
	".node-version",
	".tool-versions",
	"renovate.json",
	".renovaterc",
	".dependabot.yml",

	// docs
	"CHANGELOG",
	"HISTORY",
	"CONTRIBUTING",
	"CODE_OF_CONDUCT",
	"SECURITY",
	"SUPPORT",
	"FUNDING.yml",
	"NOTICE",
	"PATENTS",
	"UPGRADING",
	"MIGRATION",
	"ROADMAP",
	"readme",
}
