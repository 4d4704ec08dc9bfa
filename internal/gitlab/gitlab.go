package gitlab

import "gbm/internal/gitrepo"

func ConvertProjectToRepo(project Project) *gitrepo.Repository {
	return &gitrepo.Repository{
		Name:              project.Name,
		SSHURLToRepo:      project.SSHURLToRepo,
		PathWithNamespace: project.PathWithNamespace,
	}
}
