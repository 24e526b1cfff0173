package usecase

// SetWelcomeHook makes every welcome email attempt report its result on ch.
func (u *AuthUsecase) SetWelcomeHook(ch chan<- error) {
	u.welcomeSent = ch
}
