package service

// PullRequestPageSize is the page size shared by the listing and search strategies.
const PullRequestPageSize = 20

const loggerName = "github_repository"
