package auth

import "errors"

// ErrUnauthenticated cobre toda falha de verificação de identidade:
// assinatura inválida, emissor/audiência errados, token vencido, endereço
// malformado ou token que não é o corrente da identidade. O chamador não
// precisa (nem deve) distinguir os casos.
var ErrUnauthenticated = errors.New("unauthenticated")
