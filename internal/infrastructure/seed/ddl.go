package seed

// DDL portable entre PostgreSQL y SQLite.
const createTables = `
CREATE TABLE IF NOT EXISTS team (
	id   BIGINT PRIMARY KEY,
	name TEXT   NOT NULL
);
CREATE TABLE IF NOT EXISTS member (
	id       BIGINT  PRIMARY KEY,
	username TEXT    NOT NULL,
	age      INTEGER NOT NULL,
	team_id  BIGINT  REFERENCES team(id)
);
CREATE TABLE IF NOT EXISTS item (
	id             BIGINT        PRIMARY KEY,
	name           TEXT          NOT NULL,
	price          NUMERIC(12,2) NOT NULL,
	stock_quantity INTEGER       NOT NULL
);
CREATE TABLE IF NOT EXISTS delivery (
	id      BIGINT PRIMARY KEY,
	city    TEXT,
	street  TEXT,
	zipcode TEXT,
	status  TEXT
);
CREATE TABLE IF NOT EXISTS orders (
	id          BIGINT    PRIMARY KEY,
	member_id   BIGINT    NOT NULL REFERENCES member(id),
	delivery_id BIGINT    REFERENCES delivery(id),
	order_date  TIMESTAMP NOT NULL,
	status      TEXT      NOT NULL
);
CREATE TABLE IF NOT EXISTS order_item (
	id          BIGINT        PRIMARY KEY,
	order_id    BIGINT        NOT NULL REFERENCES orders(id),
	item_id     BIGINT        NOT NULL REFERENCES item(id),
	order_price NUMERIC(12,2) NOT NULL,
	quantity    INTEGER       NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_member_team_id ON member(team_id);
CREATE INDEX IF NOT EXISTS idx_orders_member_id ON orders(member_id);
CREATE INDEX IF NOT EXISTS idx_order_item_order_id ON order_item(order_id);
`

const dropTables = `
DROP TABLE IF EXISTS order_item;
DROP TABLE IF EXISTS orders;
DROP TABLE IF EXISTS delivery;
DROP TABLE IF EXISTS item;
DROP TABLE IF EXISTS member;
DROP TABLE IF EXISTS team;
`
