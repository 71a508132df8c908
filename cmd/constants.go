package cmd

// DefaultProjectConfigFilename describes the default config filename for a given project folder.
const DefaultProjectConfigFilename = "huffgen.json"

// TargetFlagDescription describes the help text for the --target flag.
const TargetFlagDescription = "path to the JSON-serialized Huff syntax tree to generate code for"
