package db

// Schema is the PostgreSQL schema of the feedback engine.
const Schema = `
CREATE TABLE IF NOT EXISTS organizations (
    id                          UUID PRIMARY KEY,
    name                        TEXT NOT NULL DEFAULT '',
    min_responses_for_anonymity INTEGER NOT NULL DEFAULT 3 CHECK (min_responses_for_anonymity >= 0)
);

CREATE TABLE IF NOT EXISTS review_cycles (
    id               UUID PRIMARY KEY,
    organization_id  UUID NOT NULL,
    reviewee_id      UUID NOT NULL,
    questionnaire_id UUID NOT NULL,
    status           TEXT NOT NULL DEFAULT 'active' CHECK (status IN ('active', 'completed')),
    created_at       TIMESTAMPTZ NOT NULL DEFAULT NOW()
);
CREATE INDEX IF NOT EXISTS idx_review_cycles_reviewee ON review_cycles (reviewee_id, questionnaire_id, created_at DESC);
CREATE INDEX IF NOT EXISTS idx_review_cycles_org ON review_cycles (organization_id, questionnaire_id);

CREATE TABLE IF NOT EXISTS questions (
    id               UUID PRIMARY KEY,
    questionnaire_id UUID NOT NULL,
    section_id       UUID NOT NULL,
    section_title    TEXT NOT NULL DEFAULT '',
    section_order    INTEGER NOT NULL DEFAULT 0,
    question_order   INTEGER NOT NULL DEFAULT 0,
    question_text    TEXT NOT NULL DEFAULT '',
    question_type    TEXT NOT NULL,
    config           JSONB NOT NULL DEFAULT '{}'
);
CREATE INDEX IF NOT EXISTS idx_questions_questionnaire ON questions (questionnaire_id);

CREATE TABLE IF NOT EXISTS responses (
    id           BIGSERIAL PRIMARY KEY,
    cycle_id     UUID NOT NULL REFERENCES review_cycles (id) ON DELETE CASCADE,
    question_id  UUID NOT NULL,
    token_id     UUID NOT NULL,
    category     TEXT NOT NULL,
    answer_data  JSONB NOT NULL DEFAULT '{}',
    submitted_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
    UNIQUE (cycle_id, question_id, token_id)
);
CREATE INDEX IF NOT EXISTS idx_responses_cycle ON responses (cycle_id);

CREATE TABLE IF NOT EXISTS reports (
    id           UUID PRIMARY KEY,
    cycle_id     UUID NOT NULL UNIQUE REFERENCES review_cycles (id) ON DELETE CASCADE,
    access_token TEXT NOT NULL UNIQUE,
    report_data  JSONB NOT NULL,
    available    BOOLEAN NOT NULL DEFAULT TRUE,
    generated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);
`
