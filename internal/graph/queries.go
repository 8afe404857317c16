package graph

// Cypher query constants for Neo4j operations. File nodes are keyed by
// runId + "::" + path so that runs never collide.
const (
	// CreateConstraintFileKey ensures File(key) is unique and indexed (required for fast MERGE/MATCH).
	CreateConstraintFileKey = `CREATE CONSTRAINT file_key IF NOT EXISTS FOR (f:File) REQUIRE f.key IS UNIQUE`

	// UpsertFileNode merges a file node by its key and sets all properties.
	UpsertFileNode = `
UNWIND $files AS f
MERGE (file:File {key: f.key})
SET file.runId = f.runId,
    file.path = f.path,
    file.dir = f.dir,
    file.classification = f.classification,
    file.primaryModule = f.primaryModule
`

	// UpsertDependsOn merges a DEPENDS_ON relationship between two file nodes.
	UpsertDependsOn = `
UNWIND $edges AS edge
MATCH (src:File {key: edge.sourceKey})
MATCH (tgt:File {key: edge.targetKey})
MERGE (src)-[r:DEPENDS_ON]->(tgt)
SET r.runId = edge.runId
`

	// DeleteRunNodes removes all nodes and relationships for a run.
	DeleteRunNodes = `
MATCH (n:File {runId: $runId})
DETACH DELETE n
`

	// DependencyDownstream walks the files a given file transitively depends on.
	DependencyDownstream = `
MATCH path = (src:File {key: $fileKey})-[:DEPENDS_ON*1..%d]->(dep)
RETURN path
`

	// DependencyUpstream walks the files that transitively depend on a given file.
	DependencyUpstream = `
MATCH path = (dependent)-[:DEPENDS_ON*1..%d]->(tgt:File {key: $fileKey})
RETURN path
`

	// DependencyBoth walks both directions from a given file.
	DependencyBoth = `
MATCH path = (dependent)-[:DEPENDS_ON*1..%d]->(tgt:File {key: $fileKey})
RETURN path
UNION
MATCH path = (src:File {key: $fileKey})-[:DEPENDS_ON*1..%d]->(dep)
RETURN path
`
)
