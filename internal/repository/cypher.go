package repository

var schemaCypher = []string{
	`CREATE CONSTRAINT person_id IF NOT EXISTS FOR (p:Person) REQUIRE p.personId IS UNIQUE`,
	`CREATE CONSTRAINT title_id IF NOT EXISTS FOR (t:Title) REQUIRE t.titleId IS UNIQUE`,
}

const upsertTitlesCypher = `
UNWIND $rows AS row
MERGE (t:Title {titleId: row.id})
SET t.name = row.name
`

const upsertPersonsCypher = `
UNWIND $rows AS row
MERGE (p:Person {personId: row.id})
SET p.name = row.name
`

const upsertCreditsCypher = `
UNWIND $rows AS row
MATCH (p:Person {personId: row.personId})
MATCH (t:Title {titleId: row.titleId})
MERGE (p)-[:CREDITED_IN]->(t)
`

const personCypher = `
MATCH (p:Person {personId: $personId})
RETURN p.name AS name
`

const shortestPathCypher = `
MATCH (source:Person {personId: $sourceId}), (target:Person {personId: $targetId})
MATCH path = shortestPath((source)-[:CREDITED_IN*]-(target))
RETURN [n IN nodes(path) | {
  id: coalesce(n.personId, n.titleId),
  kind: CASE WHEN n:Person THEN 'person' ELSE 'title' END,
  name: n.name
}] AS nodes,
length(path) AS hops
`
