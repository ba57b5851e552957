package users_services

import (
	user_repositories "sprintdesk/internal/features/users/repositories"
)

var userRepository = &user_repositories.UserRepository{}

var userService = &UserService{
	userRepository: userRepository,
}
var managementService = &UserManagementService{
	userRepository: userRepository,
}

func GetUserService() *UserService {
	return userService
}

func GetManagementService() *UserManagementService {
	return managementService
}
